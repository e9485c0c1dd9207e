package services

import (
	"context"
	"testing"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/kv"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_WritesBothSides(t *testing.T) {
	env := newTestEnv(t)
	a := env.addUser(t, "Ada", "student")
	b := env.addUser(t, "Bo", "student")

	changed, err := env.graph.Follow(context.Background(), a, b)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{b}, env.profile(t, a).Following)
	assert.Equal(t, []string{a}, env.profile(t, b).Followers)
	assert.Empty(t, env.profile(t, b).Following)
}

func TestFollow_DriftedStoredIDStaysOnItsKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ada", "student")
	target := uuid.NewString()
	other := uuid.NewString()
	require.NoError(t, env.store.Set(ctx, "user:"+target, []byte(`{"id":"`+other+`","name":"t"}`)))

	_, err := env.graph.Follow(ctx, a, target)
	require.NoError(t, err)

	assert.Equal(t, []string{a}, env.profile(t, target).Followers)
	assert.Equal(t, []string{target}, env.profile(t, a).Following)
	_, err = env.store.Get(ctx, "user:"+other)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestFollow_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	a := env.addUser(t, "Ada", "student")
	b := env.addUser(t, "Bo", "student")

	env.follow(t, a, b)
	changed, err := env.graph.Follow(context.Background(), a, b)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, env.profile(t, a).Following, 1)
	assert.Len(t, env.profile(t, b).Followers, 1)
}

func TestFollow_RepairsOneSidedEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ada", "student")
	b := env.addUser(t, "Bo", "student")

	pa := env.profile(t, a)
	pa.Following = []string{b}
	require.NoError(t, env.users.SaveProfile(ctx, pa))

	changed, err := env.graph.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []string{a}, env.profile(t, b).Followers)
}

func TestFollow_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ada", "student")

	_, err := env.graph.Follow(ctx, a, "not-a-uuid")
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	_, err = env.graph.Follow(ctx, a, a)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	_, err = env.graph.Follow(ctx, a, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Empty(t, env.profile(t, a).Following)
}

func TestUnfollow_InverseOfFollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ada", "student")
	b := env.addUser(t, "Bo", "student")
	c := env.addUser(t, "Cy", "student")
	env.follow(t, a, c)
	before := env.profile(t, a).Following

	env.follow(t, a, b)
	require.NoError(t, env.graph.Unfollow(ctx, a, b))

	assert.Equal(t, before, env.profile(t, a).Following)
	assert.Empty(t, env.profile(t, b).Followers)

	// second unfollow is a no-op
	require.NoError(t, env.graph.Unfollow(ctx, a, b))
}

func TestIsMutualFollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ada", "student")
	b := env.addUser(t, "Bo", "student")

	env.follow(t, a, b)
	mutual, err := env.graph.IsMutualFollow(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, mutual)

	env.follow(t, b, a)
	mutual, err = env.graph.IsMutualFollow(ctx, b, a)
	require.NoError(t, err)
	assert.True(t, mutual)
}

func TestFollowingAndFollowersSkipMissingProfiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ada", "student")
	b := env.addUser(t, "Bo", "instructor")
	env.follow(t, a, b)

	pa := env.profile(t, a)
	pa.Following = append(pa.Following, uuid.NewString())
	require.NoError(t, env.users.SaveProfile(ctx, pa))

	following, err := env.graph.Following(ctx, a)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "Bo", following[0].Name)
	assert.Equal(t, "instructor", following[0].Role)

	followers, err := env.graph.Followers(ctx, b)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, a, followers[0].ID)

	_, err = env.graph.Followers(ctx, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
