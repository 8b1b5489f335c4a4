package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/anonto42/newsroom-social/backend/internal/handlers"
	"github.com/anonto42/newsroom-social/backend/internal/moderation"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
	"github.com/anonto42/newsroom-social/backend/pkg/logger"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	logger.Debug("global middleware configured")
}

// ErrorHandler renders every error as {success:false, message}. 500s never
// carry the underlying error.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code != http.StatusInternalServerError {
			message = fmt.Sprint(he.Message)
		}
	} else {
		logger.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]interface{}{"success": false, "message": message})
	}
	if err != nil {
		logger.Error("write error response", zap.Error(err))
	}
}

// Dependencies are the collaborators the HTTP surface is built from.
// News may be nil when no catalogue is configured.
type Dependencies struct {
	Repos    *repositories.Repositories
	News     repositories.NewsCatalog
	Events   handlers.EventPublisher
	Identity echo.MiddlewareFunc
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api/v1")
	api.Use(deps.Identity)
	api.GET("/health", handlers.HealthCheck)

	repos := deps.Repos

	followHandler := handlers.NewFollowHandler(repos.Follows, repos.Blocks, repos.Users, deps.Events)
	followHandler.RegisterFollowRoutes(api)

	userHandler := handlers.NewUserHandler(repos.Users)
	userHandler.RegisterPreferenceRoutes(api)

	// static /shared/* paths take precedence over /shared/:id in echo's router
	feedHandler := handlers.NewFeedHandler(repos.Articles, repos.Follows, repos.Blocks)
	feedHandler.RegisterFeedRoutes(api)

	sharedHandler := handlers.NewSharedArticleHandler(repos.Articles, repos.Users, deps.Events)
	sharedHandler.RegisterSharedArticleRoutes(api)

	likeHandler := handlers.NewLikeHandler(repos.Articles, deps.Events)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(repos.Comments, repos.Articles, repos.Users, deps.Events)
	commentHandler.RegisterCommentRoutes(api)

	savedHandler := handlers.NewSavedArticleHandler(repos.Saved, repos.Articles)
	savedHandler.RegisterSavedArticleRoutes(api)

	enricher := moderation.NewEnricher(repos.Articles, repos.Comments, deps.News, repos.Users)
	reportHandler := handlers.NewReportHandler(repos.Reports, repos.Users, enricher)
	reportHandler.RegisterReportRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(repos.Notifications, repos.DeviceTokens, repos.Users)
	notificationHandler.RegisterNotificationRoutes(api)

	logger.Info("all routes configured")
}
