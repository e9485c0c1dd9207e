package handlers

import (
	"net/http"

	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 50
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feed *services.FeedService
	log  *logger.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService, log *logger.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, log: log}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// EnrichedPost is a post with caller-specific flags
type EnrichedPost struct {
	models.Post
	IsLiked bool `json:"is_liked"`
}

func enrich(posts []models.Post, viewerID string) []EnrichedPost {
	out := make([]EnrichedPost, len(posts))
	for i := range posts {
		out[i] = EnrichedPost{Post: posts[i], IsLiked: posts[i].LikedBy(viewerID)}
	}
	return out
}

// GetFeed returns the posts visible to the caller, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	page, limit := pageParams(c, defaultFeedLimit, maxFeedLimit)

	result, err := h.feed.Feed(c.Request().Context(), id.UserID, page, limit)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"posts":   enrich(result.Posts, id.UserID),
		"meta":    pageMeta(result.Page, result.Limit, result.Total),
	})
}

// GetUserPosts returns one author's posts visible to the caller
func (h *FeedHandler) GetUserPosts(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	posts, err := h.feed.UserPosts(c.Request().Context(), id.UserID, c.Param("id"))
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "posts": enrich(posts, id.UserID)})
}
