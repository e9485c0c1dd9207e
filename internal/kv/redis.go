package kv

import (
	"context"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
)

const redisScanCount = 200

// RedisStore implements Store on plain redis string keys.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// ScanPrefix walks the keyspace with SCAN MATCH and fetches values with MGET.
// Keys deleted between the two calls are skipped.
func (s *RedisStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	seen := make(map[string]struct{})
	var keys []string
	iter := s.client.Scan(ctx, 0, escapeGlob(prefix)+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for start := 0; start < len(keys); start += redisScanCount {
		end := min(start+redisScanCount, len(keys))
		values, err := s.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			str, ok := v.(string)
			if !ok {
				continue
			}
			entries = append(entries, Entry{Key: keys[start+i], Value: []byte(str)})
		}
	}
	return entries, nil
}
