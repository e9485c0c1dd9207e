package handlers

import (
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	interactions *services.InteractionService
	effects      sideEffects
	log          *logger.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(interactions *services.InteractionService, notifications *services.NotificationService, log *logger.Logger) *CommentHandler {
	return &CommentHandler{
		interactions: interactions,
		effects:      sideEffects{notifications: notifications, log: log},
		log:          log,
	}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comment", h.CreateComment)
}

// CreateComment adds a comment to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, comment, err := h.interactions.AddComment(ctx, c.Param("id"), id.UserID, req.Content)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}

	h.effects.notify(ctx, models.Notification{
		Type:        models.NotificationComment,
		ActorID:     id.UserID,
		RecipientID: post.AuthorID,
		TargetID:    post.ID,
		TargetType:  "post",
		Message:     comment.AuthorName + " commented on your post",
	})
	h.effects.publish(ctx, events.Event{
		Subject:  events.SubjectPostCommented,
		ActorID:  id.UserID,
		TargetID: post.ID,
		Payload:  comment,
	})

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "post": post, "comment": comment})
}
