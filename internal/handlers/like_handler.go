package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/notification"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
)

// LikeHandler handles like toggles on shared articles
type LikeHandler struct {
	articleRepository repositories.SharedArticleRepository
	events            EventPublisher
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(articleRepo repositories.SharedArticleRepository, events EventPublisher) *LikeHandler {
	return &LikeHandler{articleRepository: articleRepo, events: events}
}

// RegisterLikeRoutes registers like routes. Both verbs toggle.
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/shared/:id/like", h.ToggleLike)
	g.DELETE("/shared/:id/like", h.ToggleLike)
}

// ToggleLike likes or unlikes an article; only a new like notifies the owner.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	articleID, err := parseID(c, "id", "article")
	if err != nil {
		return err
	}

	res, count, err := h.articleRepository.ToggleLike(c.Request().Context(), articleID, currentUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return internalError(c, err, "toggle like")
	}

	message := "Article unliked"
	if res == models.Liked {
		message = "Article liked"
		h.events.Enqueue(notification.LikeEvent(articleID, currentUserID))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   message,
		"liked":     res == models.Liked,
		"likeCount": count,
	})
}
