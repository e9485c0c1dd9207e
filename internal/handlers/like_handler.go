package handlers

import (
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like toggles on posts
type LikeHandler struct {
	interactions *services.InteractionService
	effects      sideEffects
	log          *logger.Logger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interactions *services.InteractionService, notifications *services.NotificationService, log *logger.Logger) *LikeHandler {
	return &LikeHandler{
		interactions: interactions,
		effects:      sideEffects{notifications: notifications, log: log},
		log:          log,
	}
}

// RegisterLikeRoutes registers like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// ToggleLike likes the post, or unlikes it if the caller already liked it
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	post, liked, err := h.interactions.ToggleLike(ctx, c.Param("id"), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}

	if liked {
		h.effects.notify(ctx, models.Notification{
			Type:        models.NotificationLike,
			ActorID:     id.UserID,
			RecipientID: post.AuthorID,
			TargetID:    post.ID,
			TargetType:  "post",
			Message:     "liked your post",
		})
		h.effects.publish(ctx, events.Event{
			Subject:  events.SubjectPostLiked,
			ActorID:  id.UserID,
			TargetID: post.ID,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": liked, "post": post})
}
