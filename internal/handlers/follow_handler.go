package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/notification"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
)

// FollowHandler handles follow and block HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	blockRepository  repositories.BlockRepository
	userRepository   repositories.UserRepository
	events           EventPublisher
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, blockRepo repositories.BlockRepository, userRepo repositories.UserRepository, events EventPublisher) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		blockRepository:  blockRepo,
		userRepository:   userRepo,
		events:           events,
	}
}

// RegisterFollowRoutes registers follow and block routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:target/follow", h.FollowUser)
	g.DELETE("/users/:target/follow", h.UnfollowUser)
	g.POST("/users/:target/block", h.BlockUser)
	g.DELETE("/users/:target/block", h.UnblockUser)
	g.GET("/users/following", h.GetFollowing)
	g.GET("/users/followers", h.GetFollowers)
	g.GET("/users/blocked", h.GetBlocked)
	g.GET("/users/following-stats", h.GetFollowStats)
}

// target parses :target and checks the user exists.
func (h *FollowHandler) target(c echo.Context) (uint, error) {
	targetID, err := parseID(c, "target", "user")
	if err != nil {
		return 0, err
	}
	if _, err := h.userRepository.GetUserByID(c.Request().Context(), targetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return 0, internalError(c, err, "load target user")
	}
	return targetID, nil
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID, err := h.target(c)
	if err != nil {
		return err
	}

	res, err := h.followRepository.Follow(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return internalError(c, err, "follow user")
	}

	switch res {
	case models.FollowSelfReference:
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	case models.FollowAlreadyFollowing:
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Already following this user"})
	}

	h.events.Enqueue(notification.FollowEvent(currentUserID, targetID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User followed successfully"})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "target", "user")
	if err != nil {
		return err
	}

	removed, err := h.followRepository.Unfollow(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return internalError(c, err, "unfollow user")
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "Not following this user")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User unfollowed successfully"})
}

func (h *FollowHandler) BlockUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID, err := h.target(c)
	if err != nil {
		return err
	}

	var req models.BlockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.blockRepository.Block(c.Request().Context(), currentUserID, targetID, req.Reason)
	if err != nil {
		return internalError(c, err, "block user")
	}

	switch res {
	case models.BlockSelfReference:
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot block yourself")
	case models.BlockAlreadyBlocked:
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User already blocked"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User blocked successfully"})
}

func (h *FollowHandler) UnblockUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "target", "user")
	if err != nil {
		return err
	}

	removed, err := h.blockRepository.Unblock(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return internalError(c, err, "unblock user")
	}
	if !removed {
		return echo.NewHTTPError(http.StatusNotFound, "User is not blocked")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User unblocked successfully"})
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	following, err := h.followRepository.GetFollowing(c.Request().Context(), currentUserID)
	if err != nil {
		return internalError(c, err, "list following")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "following": following})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	followers, err := h.followRepository.GetFollowers(c.Request().Context(), currentUserID)
	if err != nil {
		return internalError(c, err, "list followers")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "followers": followers})
}

func (h *FollowHandler) GetBlocked(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	blocked, err := h.blockRepository.GetBlockedUsers(c.Request().Context(), currentUserID)
	if err != nil {
		return internalError(c, err, "list blocked users")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "blockedUsers": blocked})
}

func (h *FollowHandler) GetFollowStats(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	stats, err := h.followRepository.GetFollowStats(c.Request().Context(), currentUserID)
	if err != nil {
		return internalError(c, err, "follow stats")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "stats": stats})
}
