package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anonto42/chefhub/backend/internal/kv"
	"github.com/anonto42/chefhub/backend/internal/models"
)

// UserRepository defines the interface for profile data operations
type UserRepository interface {
	// GetProfile returns the normalized profile and whether a record exists.
	// A missing record still yields a normalized default profile.
	GetProfile(ctx context.Context, id string) (*models.Profile, bool, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
	DeleteProfile(ctx context.Context, id string) error
}

// KVUserRepository implements UserRepository on the kv store
type KVUserRepository struct {
	store kv.Store
}

// NewKVUserRepository creates a new KVUserRepository
func NewKVUserRepository(store kv.Store) *KVUserRepository {
	return &KVUserRepository{store: store}
}

func (r *KVUserRepository) GetProfile(ctx context.Context, id string) (*models.Profile, bool, error) {
	raw, err := r.store.Get(ctx, UserKey(id))
	if errors.Is(err, kv.ErrNotFound) {
		p := models.NormalizeProfile(nil, id)
		return &p, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get profile %s: %w", id, err)
	}
	// A record that is not a JSON object normalizes like an empty one.
	var fields map[string]any
	_ = json.Unmarshal(raw, &fields)
	p := models.NormalizeProfile(fields, id)
	// The key is authoritative; a drifted stored id must not redirect writes.
	p.ID = id
	return &p, true, nil
}

func (r *KVUserRepository) SaveProfile(ctx context.Context, profile *models.Profile) error {
	return kv.SetJSON(ctx, r.store, UserKey(profile.ID), profile)
}

func (r *KVUserRepository) DeleteProfile(ctx context.Context, id string) error {
	return r.store.Delete(ctx, UserKey(id))
}
