package middleware

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/pkg/logger"
)

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// UserByFirebaseUID maps a verified Firebase identity onto a local user.
type UserByFirebaseUID interface {
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
}

// FirebaseAuthMiddleware verifies Firebase ID tokens and resolves the local user.
func FirebaseAuthMiddleware(authClient tokenVerifier, users UserByFirebaseUID) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			token, err := authClient.VerifyIDToken(ctx, idToken)
			if err != nil {
				logger.Debug("firebase token rejected", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := users.GetUserByFirebaseUID(ctx, token.UID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "No account for this Firebase user")
			}

			c.Set("firebaseUID", token.UID)
			c.Set(UserIDKey, user.ID)
			return next(c)
		}
	}
}
