package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate returns a 400 HTTPError describing the first failing field.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			return echo.NewHTTPError(http.StatusBadRequest, fe.Field()+" failed on the '"+fe.Tag()+"' rule")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
