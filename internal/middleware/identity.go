package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// SetIdentity stores the authenticated caller on the request context
func SetIdentity(c echo.Context, id services.Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the caller stored by one of the auth middlewares
func GetIdentity(c echo.Context) (services.Identity, bool) {
	id, ok := c.Get(identityKey).(services.Identity)
	if !ok || id.UserID == "" {
		return services.Identity{}, false
	}
	return id, true
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
	}
	return parts[1], nil
}
