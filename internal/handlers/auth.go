package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/chefhub/backend/internal/middleware"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/services"
	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const tokenTTL = 72 * time.Hour

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	profiles  *services.ProfileService
	verifier  middleware.TokenVerifier
	jwtSecret string
	log       *logger.Logger
}

// NewAuthHandler creates a new AuthHandler. verifier may be nil when
// Firebase is not configured; the token exchange is then unavailable.
func NewAuthHandler(profiles *services.ProfileService, verifier middleware.TokenVerifier, jwtSecret string, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		profiles:  profiles,
		verifier:  verifier,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// RegisterAuthRoutes registers the unauthenticated auth routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/firebase-login", h.FirebaseLogin)
}

// RegisterSessionRoutes registers auth routes that need a caller identity
func (h *AuthHandler) RegisterSessionRoutes(g *echo.Group) {
	g.POST("/auth/session", h.StartSession)
}

// StartSession ensures the caller has a profile and stamps last_login
func (h *AuthHandler) StartSession(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.StartSession(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": profile})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.verifier == nil || h.jwtSecret == "" {
		return echo.NewHTTPError(http.StatusNotImplemented, "Firebase login is not configured")
	}

	var req FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.verifier.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	identity := services.Identity{
		UserID:  models.IDForAuthUID(token.UID),
		AuthUID: token.UID,
		Email:   email,
		Name:    name,
	}
	profile, err := h.profiles.StartSession(c.Request().Context(), identity)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}

	localJWT, err := h.generateJWT(profile)
	if err != nil {
		return toHTTPError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "token": localJWT, "user": profile})
}

// generateJWT generates a JWT token for a given profile
func (h *AuthHandler) generateJWT(p *models.Profile) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
}
