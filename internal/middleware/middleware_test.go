package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret = "test-secret"
	userID = "6f1b0c5e-3a51-4c7e-9b8e-0f3c2d1a4b5c"
)

func signed(t *testing.T, key string, method jwt.SigningMethod, claims *models.JwtCustomClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func validClaims() *models.JwtCustomClaims {
	return &models.JwtCustomClaims{
		Email: "ada@example.com",
		Name:  "Ada",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func serve(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error {
		id, ok := GetIdentity(c)
		if !ok {
			return errors.New("identity missing")
		}
		return c.String(http.StatusOK, id.UserID+"|"+id.Email)
	})(c)
	return rec, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestJWTAuthMiddleware(t *testing.T) {
	mw := JWTAuthMiddleware(secret)

	rec, err := serve(mw, "Bearer "+signed(t, secret, jwt.SigningMethodHS256, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, userID+"|ada@example.com", rec.Body.String())

	_, err = serve(mw, "")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = serve(mw, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = serve(mw, "Bearer "+signed(t, "other", jwt.SigningMethodHS256, validClaims()))
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err = serve(mw, "Bearer "+signed(t, secret, jwt.SigningMethodHS256, expired))
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	noSubject := validClaims()
	noSubject.Subject = ""
	_, err = serve(mw, "Bearer "+signed(t, secret, jwt.SigningMethodHS256, noSubject))
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("invalid token")
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	mw := FirebaseAuthMiddleware(fakeVerifier{tokens: map[string]*auth.Token{
		"good": {UID: "fb-uid-1", Claims: map[string]interface{}{"email": "bo@example.com"}},
	}})

	rec, err := serve(mw, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, models.IDForAuthUID("fb-uid-1")+"|bo@example.com", rec.Body.String())

	_, err = serve(mw, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}
