package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/notification"
	"github.com/anonto42/newsroom-social/backend/internal/policy"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	articleRepository repositories.SharedArticleRepository
	userRepository    repositories.UserRepository
	events            EventPublisher
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, articleRepo repositories.SharedArticleRepository, userRepo repositories.UserRepository, events EventPublisher) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		articleRepository: articleRepo,
		userRepository:    userRepo,
		events:            events,
	}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/shared/:id/comments", h.GetComments)
	g.POST("/shared/:id/comments", h.AddComment)
	g.DELETE("/shared/:id/comments/:commentId", h.DeleteComment)
}

// GetComments lists live comments, marking the ones the viewer may delete.
// Anonymous viewers get canDelete=false everywhere.
func (h *CommentHandler) GetComments(c echo.Context) error {
	articleID, err := parseID(c, "id", "article")
	if err != nil {
		return err
	}

	viewer := policy.Actor{}
	if getUserIDFromContext(c) != 0 {
		if viewer, err = currentActor(c, h.userRepository); err != nil {
			return err
		}
	}

	ctx := c.Request().Context()
	if _, err := h.articleRepository.GetSharedArticle(ctx, articleID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return internalError(c, err, "load article")
	}

	comments, err := h.commentRepository.GetComments(ctx, articleID, viewer)
	if err != nil {
		return internalError(c, err, "list comments")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "comments": comments, "count": len(comments)})
}

// AddComment creates a comment and notifies the article owner
func (h *CommentHandler) AddComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	articleID, err := parseID(c, "id", "article")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.commentRepository.AddComment(c.Request().Context(), articleID, currentUserID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmptyContent):
			return echo.NewHTTPError(http.StatusBadRequest, "Comment content is required")
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return internalError(c, err, "add comment")
	}

	h.events.Enqueue(notification.CommentEvent(articleID, currentUserID, id, req.Content))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "commentId": id})
}

// DeleteComment soft-deletes a comment (author or admin)
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor, err := currentActor(c, h.userRepository)
	if err != nil {
		return err
	}
	articleID, err := parseID(c, "id", "article")
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "commentId", "comment")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	comment, err := h.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return internalError(c, err, "load comment")
	}
	if comment.ArticleID != articleID {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	res, err := h.commentRepository.DeleteComment(ctx, commentID, actor)
	if err != nil {
		return internalError(c, err, "delete comment")
	}
	return deleteResponse(c, res, "Comment")
}
