package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/middleware"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// currentUser returns the authenticated caller or a 401
func currentUser(c echo.Context) (services.Identity, error) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return services.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// toHTTPError maps service errors onto HTTP errors. Anything that is not an
// *apperr.Error is logged and reported as a 500 without its details.
func toHTTPError(log *logger.Logger, c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		log.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	msg := err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	return echo.NewHTTPError(apperr.HTTPStatus(kind), msg)
}

// bindAndValidate binds the request body into req and runs the echo validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return err
		}
	}
	return nil
}

// pageParams reads page and limit query parameters with the feed defaults
func pageParams(c echo.Context, defaultLimit, maxLimit int) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func pageMeta(page, limit, total int) echo.Map {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    limit,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}

// sideEffects records notifications and events after a successful mutation.
// Failures are logged and never fail the request.
type sideEffects struct {
	notifications *services.NotificationService
	log           *logger.Logger
}

func (s sideEffects) notify(ctx context.Context, n models.Notification) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Notify(ctx, n); err != nil {
		s.log.Warn("notification failed",
			"type", n.Type,
			"recipient_id", n.RecipientID,
			"error", err,
		)
	}
}

func (s sideEffects) publish(ctx context.Context, event events.Event) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Publish(ctx, event); err != nil {
		s.log.Warn("event publish failed", "subject", event.Subject, "error", err)
	}
}
