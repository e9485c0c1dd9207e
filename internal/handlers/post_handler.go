package handlers

import (
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	posts *services.PostService
	log   *logger.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService, log *logger.Logger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post or recipe
func (h *PostHandler) CreatePost(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Create(c.Request().Context(), id.UserID, req)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "post": post})
}

// GetPost returns a single post if the caller may see it
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	post, err := h.posts.Get(c.Request().Context(), c.Param("id"), id.UserID)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"post":    EnrichedPost{Post: *post, IsLiked: post.LikedBy(id.UserID)},
	})
}

// UpdatePost edits a post. Author only.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.posts.Update(c.Request().Context(), c.Param("id"), id.UserID, req)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "post": post})
}

// DeletePost deletes a post. Author only.
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.Request().Context(), c.Param("id"), id.UserID); err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
