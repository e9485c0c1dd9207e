package handlers

import (
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// ConversationHandler handles conversations and messages
type ConversationHandler struct {
	conversations *services.ConversationService
	effects       sideEffects
	log           *logger.Logger
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(conversations *services.ConversationService, notifications *services.NotificationService, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		effects:       sideEffects{notifications: notifications, log: log},
		log:           log,
	}
}

// RegisterConversationRoutes registers conversation routes
func (h *ConversationHandler) RegisterConversationRoutes(g *echo.Group) {
	g.GET("/conversations", h.ListConversations)
	g.POST("/conversations", h.CreateConversation)
	g.POST("/conversations/group", h.CreateGroup)
	g.GET("/conversations/:id", h.GetConversation)
	g.POST("/conversations/:id/messages", h.SendMessage)
}

// ListConversations returns the caller's inbox
func (h *ConversationHandler) ListConversations(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	convs, err := h.conversations.List(c.Request().Context(), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "conversations": convs})
}

// CreateConversation returns the direct conversation with participant_id,
// opening it (possibly as a message request) when none exists
func (h *ConversationHandler) CreateConversation(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreateConversationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	conv, created, err := h.conversations.GetOrCreate(ctx, id.UserID, req.ParticipantID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		if conv.Status() == models.RequestPending {
			h.effects.notify(ctx, models.Notification{
				Type:        models.NotificationMessageRequest,
				ActorID:     id.UserID,
				RecipientID: req.ParticipantID,
				TargetID:    conv.ID,
				TargetType:  "conversation",
				Message:     "sent you a message request",
			})
		}
	}
	return c.JSON(status, echo.Map{"success": true, "conversation": conv})
}

// CreateGroup creates a group conversation. Instructors and admins only.
func (h *ConversationHandler) CreateGroup(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreateGroupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	conv, err := h.conversations.CreateGroup(c.Request().Context(), id.UserID, req.Name, req.ParticipantIDs)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "conversation": conv})
}

// GetConversation returns one conversation. Participants only.
func (h *ConversationHandler) GetConversation(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	conv, err := h.conversations.Get(c.Request().Context(), c.Param("id"), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "conversation": conv})
}

// SendMessage appends a message to a conversation
func (h *ConversationHandler) SendMessage(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	conv, msg, err := h.conversations.SendMessage(ctx, c.Param("id"), id.UserID, req.Content)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}

	for _, recipient := range services.OtherParticipants(conv, id.UserID) {
		h.effects.notify(ctx, models.Notification{
			Type:        models.NotificationMessage,
			ActorID:     id.UserID,
			RecipientID: recipient,
			TargetID:    conv.ID,
			TargetType:  "conversation",
			Message:     msg.SenderName + " sent you a message",
		})
	}
	h.effects.publish(ctx, events.Event{
		Subject:  events.SubjectMessageSent,
		ActorID:  id.UserID,
		TargetID: conv.ID,
		Payload:  msg,
	})

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "conversation": conv})
}
