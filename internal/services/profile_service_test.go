package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/chefhub/backend/internal/apperr"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	deleted []string
	err     error
}

func (f *fakeIdentity) DeleteUser(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return f.err
}

func TestStartSession_CreatesProfileOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := uuid.NewString()

	p, err := env.profiles.StartSession(ctx, Identity{UserID: id, Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, models.RoleStudent, p.Role)
	require.NotNil(t, p.LastLogin)

	name := "Ada L."
	_, err = env.profiles.Update(ctx, id, models.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)

	p, err = env.profiles.StartSession(ctx, Identity{UserID: id, Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", p.Name)
}

func TestStartSession_BannedIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.addUser(t, "Mal", "student")
	p := env.profile(t, id)
	p.Status = models.StatusBanned
	require.NoError(t, env.users.SaveProfile(ctx, p))

	_, err := env.profiles.StartSession(ctx, Identity{UserID: id})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestUpdateProfile_LeavesGraphUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ada", "student")
	b := env.addUser(t, "Bo", "student")
	env.follow(t, a, b)

	bio := "bakes"
	p, err := env.profiles.Update(ctx, a, models.UpdateProfileRequest{Bio: &bio, Skills: []string{"bread", "bread"}})
	require.NoError(t, err)
	assert.Equal(t, "bakes", p.Bio)
	assert.Equal(t, []string{"bread", "bread"}, p.Skills)
	assert.Equal(t, []string{b}, env.profile(t, a).Following)
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.addUser(t, "Ada", "student")

	p, err := env.profiles.Get(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)

	_, err = env.profiles.Get(ctx, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = env.profiles.Get(ctx, "nope")
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}

func TestAdminDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	identity := &fakeIdentity{}
	env.profiles = NewProfileService(env.users, env.posts, env.convs, identity)

	admin := env.addUser(t, "Root", models.RoleAdmin)
	victim := env.addUser(t, "Spam", models.RoleStudent)
	other := env.addUser(t, "Bo", models.RoleStudent)
	_, err := env.postSvc.Create(ctx, victim, models.CreatePostRequest{Content: "buy now"})
	require.NoError(t, err)
	_, _, err = env.conversations.GetOrCreate(ctx, victim, other)
	require.NoError(t, err)

	err = env.profiles.AdminDelete(ctx, other, victim)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	require.NoError(t, env.profiles.AdminDelete(ctx, admin, victim))
	_, found, err := env.users.GetProfile(ctx, victim)
	require.NoError(t, err)
	assert.False(t, found)
	ids, err := env.posts.ListUserPostIDs(ctx, victim)
	require.NoError(t, err)
	assert.Empty(t, ids)
	convIDs, err := env.convs.ListUserConversationIDs(ctx, victim)
	require.NoError(t, err)
	assert.Empty(t, convIDs)
	assert.Equal(t, []string{victim}, identity.deleted)

	identity.err = errors.New("boom")
	spare := env.addUser(t, "Spare", models.RoleStudent)
	err = env.profiles.AdminDelete(ctx, admin, spare)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
}
