package validators

import (
	"net/http"
	"testing"

	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(&models.CreatePostRequest{Content: "hello", Privacy: "followers"}))

	err := v.Validate(&models.CreatePostRequest{Content: "hello", Privacy: "friends"})
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, he.Message, "privacy failed oneof")

	err = v.Validate(&models.FollowRequest{})
	require.Error(t, err)
	assert.Contains(t, err.(*echo.HTTPError).Message, "target_user_id failed required")
}
