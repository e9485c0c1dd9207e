package handlers

import (
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
	profiles      *services.ProfileService
	log           *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService, profiles *services.ProfileService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, profiles: profiles, log: log}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor *models.UserCompact `json:"actor,omitempty"`
}

func (h *NotificationHandler) enrichNotifications(c echo.Context, notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	actors := make(map[string]*models.UserCompact)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		actor, seen := actors[n.ActorID]
		if !seen {
			if p, err := h.profiles.Get(c.Request().Context(), n.ActorID); err == nil {
				compact := p.ToCompact()
				actor = &compact
			}
			actors[n.ActorID] = actor
		}
		enriched[i].Actor = actor
	}
	return enriched
}

// GetNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c, 20, 50)

	list, err := h.notifications.List(c.Request().Context(), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	total := len(list)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"notifications": h.enrichNotifications(c, list[start:end]),
		"meta":          pageMeta(page, limit, total),
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	count, err := h.notifications.UnreadCount(c.Request().Context(), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": count})
}

// MarkAsRead marks a notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	n, err := h.notifications.MarkRead(c.Request().Context(), id.UserID, c.Param("id"))
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "notification": n})
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	marked, err := h.notifications.MarkAllRead(c.Request().Context(), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "marked": marked})
}
