package handlers

import (
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// MessageRequestHandler handles pending message requests
type MessageRequestHandler struct {
	conversations *services.ConversationService
	effects       sideEffects
	log           *logger.Logger
}

// NewMessageRequestHandler creates a new MessageRequestHandler
func NewMessageRequestHandler(conversations *services.ConversationService, notifications *services.NotificationService, log *logger.Logger) *MessageRequestHandler {
	return &MessageRequestHandler{
		conversations: conversations,
		effects:       sideEffects{notifications: notifications, log: log},
		log:           log,
	}
}

// RegisterMessageRequestRoutes registers message request routes
func (h *MessageRequestHandler) RegisterMessageRequestRoutes(g *echo.Group) {
	g.GET("/message-requests", h.ListRequests)
	g.POST("/message-requests/:id/accept", h.AcceptRequest)
	g.POST("/message-requests/:id/decline", h.DeclineRequest)
}

// ListRequests returns the pending requests the caller has received
func (h *MessageRequestHandler) ListRequests(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	requests, err := h.conversations.Requests(c.Request().Context(), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "requests": requests})
}

// AcceptRequest accepts a pending message request
func (h *MessageRequestHandler) AcceptRequest(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	conv, err := h.conversations.Accept(ctx, c.Param("id"), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	h.effects.publish(ctx, events.Event{
		Subject:  events.SubjectRequestAccepted,
		ActorID:  id.UserID,
		TargetID: conv.ID,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true, "conversation": conv})
}

// DeclineRequest declines a pending message request
func (h *MessageRequestHandler) DeclineRequest(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	conv, err := h.conversations.Decline(ctx, c.Param("id"), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	h.effects.publish(ctx, events.Event{
		Subject:  events.SubjectRequestDeclined,
		ActorID:  id.UserID,
		TargetID: conv.ID,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
