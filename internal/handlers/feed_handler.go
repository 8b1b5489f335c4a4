package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/newsroom-social/backend/internal/feed"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
)

// FeedHandler serves the composed shared-article feed
type FeedHandler struct {
	articleRepository repositories.SharedArticleRepository
	followRepository  repositories.FollowRepository
	blockRepository   repositories.BlockRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(articleRepo repositories.SharedArticleRepository, followRepo repositories.FollowRepository, blockRepo repositories.BlockRepository) *FeedHandler {
	return &FeedHandler{
		articleRepository: articleRepo,
		followRepository:  followRepo,
		blockRepository:   blockRepo,
	}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/shared/feed", h.GetFeed)
}

// GetFeed composes the feed from fresh reads on every request.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	followingOnly, _ := strconv.ParseBool(c.QueryParam("followingOnly"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	opts := feed.Options{
		FollowingOnly: followingOnly,
		Sort:          feed.ParseSort(c.QueryParam("sort")),
		Page:          page,
	}

	ctx := c.Request().Context()
	articles, err := h.articleRepository.ListSharedArticles(ctx)
	if err != nil {
		return internalError(c, err, "load feed articles")
	}
	blockedIDs, err := h.blockRepository.GetBlockedIDs(ctx, currentUserID)
	if err != nil {
		return internalError(c, err, "load blocked users")
	}
	followingIDs, err := h.followRepository.GetFollowingIDs(ctx, currentUserID)
	if err != nil {
		return internalError(c, err, "load following")
	}

	p := feed.Compose(currentUserID, articles, feed.IDSet(blockedIDs), feed.IDSet(followingIDs), opts)
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"articles":   p.Articles,
		"count":      p.Count,
		"page":       p.Page,
		"totalPages": p.TotalPages,
		"hasNext":    p.HasNext,
	})
}
