package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/newsroom-social/backend/internal/repositories"
)

// SavedArticleHandler handles bookmark HTTP requests
type SavedArticleHandler struct {
	savedRepository   repositories.SavedArticleRepository
	articleRepository repositories.SharedArticleRepository
}

// NewSavedArticleHandler creates a new SavedArticleHandler
func NewSavedArticleHandler(savedRepo repositories.SavedArticleRepository, articleRepo repositories.SharedArticleRepository) *SavedArticleHandler {
	return &SavedArticleHandler{savedRepository: savedRepo, articleRepository: articleRepo}
}

// RegisterSavedArticleRoutes registers bookmark routes
func (h *SavedArticleHandler) RegisterSavedArticleRoutes(g *echo.Group) {
	g.POST("/shared/:id/save", h.SaveArticle)
	g.DELETE("/shared/:id/save", h.UnsaveArticle)
	g.GET("/shared/saved", h.GetSavedArticles)
}

// SaveArticle bookmarks an article
func (h *SavedArticleHandler) SaveArticle(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	articleID, err := parseID(c, "id", "article")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.articleRepository.GetSharedArticle(ctx, articleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return internalError(c, err, "load article")
	}

	created, err := h.savedRepository.Save(ctx, currentUserID, articleID)
	if err != nil {
		return internalError(c, err, "save article")
	}
	if !created {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Article already saved"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Article saved"})
}

// UnsaveArticle removes a bookmark
func (h *SavedArticleHandler) UnsaveArticle(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	articleID, err := parseID(c, "id", "article")
	if err != nil {
		return err
	}

	removed, err := h.savedRepository.Unsave(c.Request().Context(), currentUserID, articleID)
	if err != nil {
		return internalError(c, err, "unsave article")
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "Article not saved")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Article removed from saved"})
}

func (h *SavedArticleHandler) GetSavedArticles(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	articles, err := h.savedRepository.ListSaved(c.Request().Context(), currentUserID)
	if err != nil {
		return internalError(c, err, "list saved articles")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "articles": articles, "count": len(articles)})
}
