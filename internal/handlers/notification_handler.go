package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/repositories"
)

const defaultDeviceType = "web"

// NotificationHandler handles push registration and the in-app inbox
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	tokenRepository        repositories.DeviceTokenRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, tokenRepo repositories.DeviceTokenRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		tokenRepository:        tokenRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/notification/register-token", h.RegisterToken)
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/grouped", h.GetGroupedNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

func (h *NotificationHandler) enrichNotifications(c echo.Context, notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	userCache := make(map[uint]models.UserCompact)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		if actor, ok := userCache[n.ActorID]; ok {
			enriched[i].Actor = actor
		} else {
			user, err := h.userRepository.GetUserByID(c.Request().Context(), n.ActorID)
			if err == nil {
				compact := user.ToCompact()
				userCache[n.ActorID] = compact
				enriched[i].Actor = compact
			}
		}
	}
	return enriched
}

// RegisterToken records the caller's push token. The body's userId is used
// only when no identity middleware has set the caller.
func (h *NotificationHandler) RegisterToken(c echo.Context) error {
	var req models.RegisterTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	userID := getUserIDFromContext(c)
	if userID == 0 {
		userID = req.UserID
	}
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if req.DeviceType == "" {
		req.DeviceType = defaultDeviceType
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request().UserAgent()
	}

	err := h.tokenRepository.RegisterToken(c.Request().Context(), userID, req.Token, req.DeviceType, req.UserAgent)
	if err != nil {
		if errors.Is(err, repositories.ErrEmptyContent) {
			return echo.NewHTTPError(http.StatusBadRequest, "Token is required")
		}
		return internalError(c, err, "register device token")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Token registered"})
}

// GetNotifications returns paginated notifications
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	notifications, total, err := h.notificationRepository.GetByRecipientID(c.Request().Context(), currentUserID, page, limit)
	if err != nil {
		return internalError(c, err, "list notifications")
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": h.enrichNotifications(c, notifications),
		},
		"pagination": echo.Map{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
			"has_more":    page < totalPages,
		},
	})
}

// GetGroupedNotifications buckets the inbox by day
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	groups, err := h.notificationRepository.GetGrouped(c.Request().Context(), currentUserID)
	if err != nil {
		return internalError(c, err, "group notifications")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"today":     h.enrichNotifications(c, groups.Today),
			"yesterday": h.enrichNotifications(c, groups.Yesterday),
			"thisWeek":  h.enrichNotifications(c, groups.ThisWeek),
			"older":     h.enrichNotifications(c, groups.Older),
		},
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), currentUserID)
	if err != nil {
		return internalError(c, err, "unread count")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"unread_count": count}})
}

// MarkAsRead marks one notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id", "notification")
	if err != nil {
		return err
	}

	found, err := h.notificationRepository.MarkAsRead(c.Request().Context(), currentUserID, id)
	if err != nil {
		return internalError(c, err, "mark notification read")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Notification marked as read"})
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	if err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), currentUserID); err != nil {
		return internalError(c, err, "mark all notifications read")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "All notifications marked as read"})
}
