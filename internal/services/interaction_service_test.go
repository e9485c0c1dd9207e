package services

import (
	"context"
	"testing"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecipe(t *testing.T, env *testEnv, author string, privacy string) *models.Post {
	t.Helper()
	post, err := env.postSvc.Create(context.Background(), author, models.CreatePostRequest{
		Type:       models.PostTypeRecipe,
		Content:    "Sourdough",
		Privacy:    privacy,
		RecipeData: &models.RecipeDataRequest{Title: "Sourdough", Difficulty: "hard", Servings: 4},
	})
	require.NoError(t, err)
	return post
}

func TestToggleLike_Involution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")
	fan := env.addUser(t, "Bo", "student")
	post := newRecipe(t, env, author, "")

	liked, isLiked, err := env.interactions.ToggleLike(ctx, post.ID, fan)
	require.NoError(t, err)
	assert.True(t, isLiked)
	assert.Equal(t, []string{fan}, liked.Likes)

	unliked, isLiked, err := env.interactions.ToggleLike(ctx, post.ID, fan)
	require.NoError(t, err)
	assert.False(t, isLiked)
	assert.Empty(t, unliked.Likes)

	stored, err := env.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Likes, stored.Likes)
}

func TestInteractions_RequireVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")
	other := env.addUser(t, "Bo", "student")
	post := newRecipe(t, env, author, models.PrivacyPrivate)

	_, _, err := env.interactions.ToggleLike(ctx, post.ID, other)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, _, err = env.interactions.AddComment(ctx, post.ID, other, "nice")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = env.interactions.Rate(ctx, post.ID, other, 5)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, _, err = env.interactions.ToggleLike(ctx, uuid.NewString(), other)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")
	fan := env.addUser(t, "Bo", "student")
	post := newRecipe(t, env, author, "")

	updated, comment, err := env.interactions.AddComment(ctx, post.ID, fan, "Great crumb")
	require.NoError(t, err)
	assert.Equal(t, "Bo", comment.AuthorName)
	assert.NotEmpty(t, comment.ID)
	require.Len(t, updated.Comments, 1)

	_, _, err = env.interactions.AddComment(ctx, post.ID, fan, " ")
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}

func TestRate_ReplacesPreviousRatingAndRecomputesMean(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")
	u1 := env.addUser(t, "Bo", "student")
	u2 := env.addUser(t, "Cy", "student")
	post := newRecipe(t, env, author, "")

	_, err := env.interactions.Rate(ctx, post.ID, u1, 2)
	require.NoError(t, err)
	rated, err := env.interactions.Rate(ctx, post.ID, u2, 5)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, rated.RecipeData.Rating, 1e-9)

	rated, err = env.interactions.Rate(ctx, post.ID, u1, 4)
	require.NoError(t, err)
	require.Len(t, rated.Ratings, 2)
	assert.InDelta(t, 4.5, rated.RecipeData.Rating, 1e-9)
	assert.Equal(t, "Sourdough", rated.RecipeData.Title)

	count := 0
	for _, r := range rated.Ratings {
		if r.UserID == u1 {
			count++
			assert.Equal(t, 4, r.Rating)
		}
	}
	assert.Equal(t, 1, count)
}

func TestRate_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")
	fan := env.addUser(t, "Bo", "student")
	recipe := newRecipe(t, env, author, "")
	plain, err := env.postSvc.Create(ctx, author, models.CreatePostRequest{Content: "hello"})
	require.NoError(t, err)

	for _, r := range []int{0, 6, -1} {
		_, err := env.interactions.Rate(ctx, recipe.ID, fan, r)
		assert.True(t, apperr.Is(err, apperr.KindInvalidArgument), "rating %d", r)
	}
	_, err = env.interactions.Rate(ctx, plain.ID, fan, 3)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.InDelta(t, 2.0, AverageRating([]models.Rating{{Rating: 1}, {Rating: 3}}), 1e-9)
}
