package services

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/chefhub/backend/internal/events"
	"github.com/anonto42/chefhub/backend/internal/kv"
	"github.com/anonto42/chefhub/backend/internal/models"
	"github.com/anonto42/chefhub/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store         kv.Store
	users         *repositories.KVUserRepository
	posts         *repositories.KVPostRepository
	convs         *repositories.KVConversationRepository
	graph         *SocialGraph
	feed          *FeedService
	conversations *ConversationService
	interactions  *InteractionService
	postSvc       *PostService
	profiles      *ProfileService
	notifications *NotificationService
	published     *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := kv.NewMemoryStore()
	env := &testEnv{
		store:     store,
		users:     repositories.NewKVUserRepository(store),
		posts:     repositories.NewKVPostRepository(store),
		convs:     repositories.NewKVConversationRepository(store),
		published: &recordingPublisher{},
	}
	env.graph = NewSocialGraph(env.users)
	env.feed = NewFeedService(env.posts, env.users)
	env.conversations = NewConversationService(env.convs, env.users, env.graph)
	env.interactions = NewInteractionService(env.posts, env.users)
	env.postSvc = NewPostService(env.posts, env.users)
	env.profiles = NewProfileService(env.users, env.posts, env.convs, nil)
	env.notifications = NewNotificationService(repositories.NewKVNotificationRepository(store), env.published)
	return env
}

// addUser stores a fresh profile and returns its id.
func (e *testEnv) addUser(t *testing.T, name, role string) string {
	t.Helper()
	id := uuid.NewString()
	p := models.NormalizeProfile(map[string]any{"name": name, "role": role}, id)
	require.NoError(t, e.users.SaveProfile(context.Background(), &p))
	return id
}

func (e *testEnv) profile(t *testing.T, id string) *models.Profile {
	t.Helper()
	p, _, err := e.users.GetProfile(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (e *testEnv) follow(t *testing.T, actor, target string) {
	t.Helper()
	_, err := e.graph.Follow(context.Background(), actor, target)
	require.NoError(t, err)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Subject)
	}
	return out
}
