package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanView(t *testing.T) {
	author := uuid.NewString()
	viewer := uuid.NewString()

	tests := []struct {
		name      string
		privacy   string
		viewer    string
		following []string
		want      bool
	}{
		{"public", models.PrivacyPublic, viewer, nil, true},
		{"missing privacy is public", "", viewer, nil, true},
		{"followers without edge", models.PrivacyFollowers, viewer, nil, false},
		{"followers with edge", models.PrivacyFollowers, viewer, []string{author}, true},
		{"private", models.PrivacyPrivate, viewer, []string{author}, false},
		{"unknown tier", "friends", viewer, []string{author}, false},
		{"author sees private", models.PrivacyPrivate, author, nil, true},
		{"author sees unknown tier", "friends", author, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &models.Post{AuthorID: author, Privacy: tt.privacy}
			assert.Equal(t, tt.want, CanView(post, tt.viewer, tt.following))
		})
	}
}

func TestFilterVisiblePreservesOrder(t *testing.T) {
	author := uuid.NewString()
	posts := []models.Post{
		{ID: "1", AuthorID: author, Privacy: models.PrivacyPublic},
		{ID: "2", AuthorID: author, Privacy: models.PrivacyPrivate},
		{ID: "3", AuthorID: author, Privacy: models.PrivacyFollowers},
		{ID: "4", AuthorID: author, Privacy: models.PrivacyPublic},
	}
	got := FilterVisible(posts, uuid.NewString(), []string{author})
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "3", "4"}, ids)
}

func TestFeed_FiltersSortsAndPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "instructor")
	fan := env.addUser(t, "Bo", "student")
	stranger := env.addUser(t, "Cy", "student")
	env.follow(t, fan, author)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	privacies := []string{
		models.PrivacyPublic,
		models.PrivacyFollowers,
		models.PrivacyPrivate,
		models.PrivacyPublic,
	}
	for i, privacy := range privacies {
		post := &models.Post{
			ID:        uuid.NewString(),
			AuthorID:  author,
			Content:   privacy,
			Privacy:   privacy,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, env.posts.SavePost(ctx, post))
	}

	page, err := env.feed.Feed(ctx, fan, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Posts, 3)
	assert.Equal(t, base.Add(3*time.Hour), page.Posts[0].CreatedAt)
	assert.Equal(t, models.PrivacyFollowers, page.Posts[1].Privacy)

	page, err = env.feed.Feed(ctx, stranger, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = env.feed.Feed(ctx, author, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, base, page.Posts[0].CreatedAt)

	page, err = env.feed.Feed(ctx, author, 9, 3)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestUserPosts_SkipsDanglingIndexEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.addUser(t, "Ada", "student")
	viewer := env.addUser(t, "Bo", "student")

	_, err := env.postSvc.Create(ctx, author, models.CreatePostRequest{Content: "soup"})
	require.NoError(t, err)
	_, err = env.postSvc.Create(ctx, author, models.CreatePostRequest{Content: "secret", Privacy: models.PrivacyPrivate})
	require.NoError(t, err)
	require.NoError(t, env.posts.AddUserPost(ctx, author, uuid.NewString()))

	posts, err := env.feed.UserPosts(ctx, viewer, author)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "soup", posts[0].Content)

	own, err := env.feed.UserPosts(ctx, author, author)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	_, err = env.feed.UserPosts(ctx, viewer, "bogus")
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}
