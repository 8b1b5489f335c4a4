package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Content string `validate:"required,min=1"`
	Kind    string `validate:"omitempty,oneof=web ios android"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(sample{Content: "hi", Kind: "web"}))

	err := v.Validate(sample{Kind: "web"})
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
	require.Contains(t, httpErr.Message, "Content")

	err = v.Validate(sample{Content: "hi", Kind: "fax"})
	require.Error(t, err)
}
