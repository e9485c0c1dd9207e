package handlers

import (
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user profile requests
type UserHandler struct {
	profiles *services.ProfileService
	log      *logger.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profiles *services.ProfileService, log *logger.Logger) *UserHandler {
	return &UserHandler{profiles: profiles, log: log}
}

// RegisterProfileRoutes registers profile and admin user routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/users/:id", h.GetUser)
	g.DELETE("/admin/users/:id", h.DeleteUser)
}

// GetProfile returns the caller's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.Me(c.Request().Context(), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": profile})
}

// UpdateProfile edits the caller's profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	profile, err := h.profiles.Update(c.Request().Context(), id.UserID, req)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": profile})
}

// GetUser returns another user's profile
func (h *UserHandler) GetUser(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	profile, err := h.profiles.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": profile})
}

// DeleteUser removes a user account. Admin only.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	target := c.Param("id")
	if err := h.profiles.AdminDelete(c.Request().Context(), id.UserID, target); err != nil {
		return toHTTPError(h.log, c, err)
	}
	h.log.Info("user deleted", "admin_id", id.UserID, "user_id", target)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
