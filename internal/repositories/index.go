package repositories

import (
	"context"

	"github.com/anonto42/chefhub/backend/internal/kv"
)

// idIndex is an ordered list of ids stored under <prefix><owner>.
// Updates are read-modify-write and not atomic with the records they index.
type idIndex struct {
	store  kv.Store
	keyFor func(owner string) string
}

func (x idIndex) List(ctx context.Context, owner string) ([]string, error) {
	ids := []string{}
	if _, err := kv.GetJSON(ctx, x.store, x.keyFor(owner), &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Add appends id unless it is already present.
func (x idIndex) Add(ctx context.Context, owner, id string) error {
	ids, err := x.List(ctx, owner)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return kv.SetJSON(ctx, x.store, x.keyFor(owner), append(ids, id))
}

func (x idIndex) Remove(ctx context.Context, owner, id string) error {
	ids, err := x.List(ctx, owner)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return kv.SetJSON(ctx, x.store, x.keyFor(owner), kept)
}

func (x idIndex) Drop(ctx context.Context, owner string) error {
	return x.store.Delete(ctx, x.keyFor(owner))
}
