package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anonto42/newsroom-social/backend/internal/middleware"
	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/notification"
	"github.com/anonto42/newsroom-social/backend/internal/policy"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
	"github.com/anonto42/newsroom-social/backend/pkg/logger"
)

// EventPublisher accepts notification events without blocking.
type EventPublisher interface {
	Enqueue(ev notification.Event) bool
}

type userLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

func getUserIDFromContext(c echo.Context) uint {
	id, _ := c.Get(middleware.UserIDKey).(uint)
	return id
}

func requireUser(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// currentActor resolves the caller's admin flag.
func currentActor(c echo.Context, users userLookup) (policy.Actor, error) {
	id, err := requireUser(c)
	if err != nil {
		return policy.Actor{}, err
	}
	user, err := users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return policy.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
		}
		return policy.Actor{}, internalError(c, err, "load current user")
	}
	return policy.Actor{ID: user.ID, IsAdmin: user.IsAdmin}, nil
}

func parseID(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+label+" ID")
	}
	return uint(id), nil
}

// bindAndValidate decodes the body and runs the echo validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return err
		}
	}
	return nil
}

// internalError logs err and returns a 500 that carries no storage details.
func internalError(c echo.Context, err error, msg string) error {
	logger.Error(msg,
		zap.Error(err),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
	)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

func deleteResponse(c echo.Context, res models.DeleteResult, what string) error {
	switch res {
	case models.DeleteNotFound:
		return echo.NewHTTPError(http.StatusNotFound, what+" not found")
	case models.DeleteForbidden:
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this "+strings.ToLower(what))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": what + " deleted"})
}
