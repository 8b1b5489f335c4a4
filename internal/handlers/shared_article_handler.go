package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/notification"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
)

// SharedArticleHandler handles sharing and deleting articles
type SharedArticleHandler struct {
	articleRepository repositories.SharedArticleRepository
	userRepository    repositories.UserRepository
	events            EventPublisher
}

func NewSharedArticleHandler(articleRepo repositories.SharedArticleRepository, userRepo repositories.UserRepository, events EventPublisher) *SharedArticleHandler {
	return &SharedArticleHandler{
		articleRepository: articleRepo,
		userRepository:    userRepo,
		events:            events,
	}
}

func (h *SharedArticleHandler) RegisterSharedArticleRoutes(g *echo.Group) {
	g.POST("/shared", h.CreateSharedArticle)
	g.GET("/shared", h.ListSharedArticles)
	g.DELETE("/shared/:id", h.DeleteSharedArticle)
}

// CreateSharedArticle shares a link and notifies the sharer's followers
func (h *SharedArticleHandler) CreateSharedArticle(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	var req models.CreateSharedArticleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.articleRepository.CreateSharedArticle(c.Request().Context(), currentUserID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrEmptyURL) {
			return echo.NewHTTPError(http.StatusBadRequest, "URL is required")
		}
		return internalError(c, err, "create shared article")
	}

	h.events.Enqueue(notification.ShareEvent(id, currentUserID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "sharedId": id})
}

// ListSharedArticles returns every shared article without feed filtering
func (h *SharedArticleHandler) ListSharedArticles(c echo.Context) error {
	articles, err := h.articleRepository.ListSharedArticles(c.Request().Context())
	if err != nil {
		return internalError(c, err, "list shared articles")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "articles": articles, "count": len(articles)})
}

func (h *SharedArticleHandler) DeleteSharedArticle(c echo.Context) error {
	actor, err := currentActor(c, h.userRepository)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "article")
	if err != nil {
		return err
	}

	res, err := h.articleRepository.DeleteSharedArticle(c.Request().Context(), id, actor)
	if err != nil {
		return internalError(c, err, "delete shared article")
	}
	return deleteResponse(c, res, "Article")
}
