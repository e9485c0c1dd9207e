package services

import (
	"context"
	"testing"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_Defaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")

	post, err := env.postSvc.Create(ctx, author, models.CreatePostRequest{Content: "Pho night"})
	require.NoError(t, err)
	assert.Equal(t, models.PostTypePost, post.Type)
	assert.Equal(t, models.PrivacyPublic, post.Privacy)
	assert.Equal(t, "Ada", post.AuthorName)
	assert.Equal(t, []string{}, post.Images)
	assert.Nil(t, post.RecipeData)

	ids, err := env.posts.ListUserPostIDs(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, ids)

	_, err = env.postSvc.Create(ctx, author, models.CreatePostRequest{Type: models.PostTypeRecipe, Content: "x"})
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}

func TestGetPost_HiddenIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")
	fan := env.addUser(t, "Bo", "student")

	post, err := env.postSvc.Create(ctx, author, models.CreatePostRequest{Content: "members only", Privacy: models.PrivacyFollowers})
	require.NoError(t, err)

	_, err = env.postSvc.Get(ctx, post.ID, fan)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	env.follow(t, fan, author)
	got, err := env.postSvc.Get(ctx, post.ID, fan)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestUpdatePost_AuthorOnlyAndKeepsRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")
	fan := env.addUser(t, "Bo", "student")
	post := newRecipe(t, env, author, "")
	_, err := env.interactions.Rate(ctx, post.ID, fan, 4)
	require.NoError(t, err)

	content := "edited"
	_, err = env.postSvc.Update(ctx, post.ID, fan, models.UpdatePostRequest{Content: &content})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	updated, err := env.postSvc.Update(ctx, post.ID, author, models.UpdatePostRequest{
		Content:    &content,
		RecipeData: &models.RecipeDataRequest{Title: "Rye"},
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, "Rye", updated.RecipeData.Title)
	assert.InDelta(t, 4.0, updated.RecipeData.Rating, 1e-9)
}

func TestDeletePost_RemovesIndexEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")
	fan := env.addUser(t, "Bo", "student")
	post, err := env.postSvc.Create(ctx, author, models.CreatePostRequest{Content: "bye"})
	require.NoError(t, err)

	assert.True(t, apperr.Is(env.postSvc.Delete(ctx, post.ID, fan), apperr.KindForbidden))
	require.NoError(t, env.postSvc.Delete(ctx, post.ID, author))

	_, err = env.posts.GetPost(ctx, post.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	ids, err := env.posts.ListUserPostIDs(ctx, author)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
