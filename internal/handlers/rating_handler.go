package handlers

import (
	"fmt"
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// RatingHandler handles recipe ratings
type RatingHandler struct {
	interactions *services.InteractionService
	effects      sideEffects
	log          *logger.Logger
}

// NewRatingHandler creates a new RatingHandler
func NewRatingHandler(interactions *services.InteractionService, notifications *services.NotificationService, log *logger.Logger) *RatingHandler {
	return &RatingHandler{
		interactions: interactions,
		effects:      sideEffects{notifications: notifications, log: log},
		log:          log,
	}
}

// RegisterRatingRoutes registers rating routes
func (h *RatingHandler) RegisterRatingRoutes(g *echo.Group) {
	g.POST("/posts/:id/rate", h.RatePost)
}

// RatePost records the caller's 1-5 rating of a recipe
func (h *RatingHandler) RatePost(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.RatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.interactions.Rate(ctx, c.Param("id"), id.UserID, req.Rating)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}

	h.effects.notify(ctx, models.Notification{
		Type:        models.NotificationRating,
		ActorID:     id.UserID,
		RecipientID: post.AuthorID,
		TargetID:    post.ID,
		TargetType:  "post",
		Message:     fmt.Sprintf("rated your recipe %d stars", req.Rating),
	})
	h.effects.publish(ctx, events.Event{
		Subject:  events.SubjectPostRated,
		ActorID:  id.UserID,
		TargetID: post.ID,
		Payload:  echo.Map{"rating": req.Rating, "average": post.RecipeData.Rating},
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "post": post})
}
