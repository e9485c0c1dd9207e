package handlers

import (
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	graph    *services.SocialGraph
	profiles *services.ProfileService
	effects  sideEffects
	log      *logger.Logger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graph *services.SocialGraph, profiles *services.ProfileService, notifications *services.NotificationService, log *logger.Logger) *FollowHandler {
	return &FollowHandler{
		graph:    graph,
		profiles: profiles,
		effects:  sideEffects{notifications: notifications, log: log},
		log:      log,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/follow", h.FollowUser)
	g.POST("/users/unfollow", h.UnfollowUser)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/followers", h.GetFollowers)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.FollowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	changed, err := h.graph.Follow(ctx, id.UserID, req.TargetUserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}

	if changed {
		actor, err := h.profiles.Me(ctx, id.UserID)
		name := ""
		if err == nil {
			name = actor.Name
		}
		h.effects.notify(ctx, models.Notification{
			Type:        models.NotificationFollow,
			ActorID:     id.UserID,
			RecipientID: req.TargetUserID,
			TargetID:    id.UserID,
			TargetType:  "user",
			Message:     name + " started following you",
		})
		h.effects.publish(ctx, events.Event{
			Subject:  events.SubjectUserFollowed,
			ActorID:  id.UserID,
			TargetID: req.TargetUserID,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.FollowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.graph.Unfollow(c.Request().Context(), id.UserID, req.TargetUserID); err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetFollowing lists the users a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	following, err := h.graph.Following(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "following": following})
}

// GetFollowers lists the users following a user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	followers, err := h.graph.Followers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "followers": followers})
}
