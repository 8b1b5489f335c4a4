package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
)

// UserHandler serves the caller's notification preferences.
type UserHandler struct {
	userRepository repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

func (h *UserHandler) RegisterPreferenceRoutes(g *echo.Group) {
	g.GET("/users/preferences", h.GetPreferences)
	g.PUT("/users/preferences", h.UpdatePreferences)
}

func (h *UserHandler) GetPreferences(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	prefs, err := h.userRepository.GetPreferences(c.Request().Context(), currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return internalError(c, err, "load preferences")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "preferences": prefs})
}

func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.UpdatePreferencesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	prefs, err := h.userRepository.UpdatePreferences(c.Request().Context(), currentUserID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return internalError(c, err, "update preferences")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "preferences": prefs})
}
