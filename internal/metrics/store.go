package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/chefhub/backend/internal/kv"
)

type instrumentedStore struct {
	next kv.Store
	m    *Metrics
}

// InstrumentStore wraps s so every operation is counted and timed
func (m *Metrics) InstrumentStore(s kv.Store) kv.Store {
	return &instrumentedStore{next: s, m: m}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := s.next.Get(ctx, key)
	s.m.observeKV("get", outcome(err), start)
	return v, err
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.m.observeKV("set", outcome(err), start)
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.m.observeKV("delete", outcome(err), start)
	return err
}

func (s *instrumentedStore) ScanPrefix(ctx context.Context, prefix string) ([]kv.Entry, error) {
	start := time.Now()
	entries, err := s.next.ScanPrefix(ctx, prefix)
	s.m.observeKV("scan", outcome(err), start)
	return entries, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, kv.ErrNotFound):
		return "miss"
	default:
		return "error"
	}
}
