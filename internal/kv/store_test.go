package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// runStoreSuite exercises the behaviour every backend must share.
func runStoreSuite(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "user:missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "user:1", []byte(`{"name":"Ada"}`)))
		got, err := s.Get(ctx, "user:1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Ada"}`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "user:1", []byte(`{"name":"Grace"}`)))
		got, err := s.Get(ctx, "user:1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Grace"}`, string(got))
	})

	t.Run("array values", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "user_posts:1", []byte(`["a","b"]`)))
		got, err := s.Get(ctx, "user_posts:1")
		require.NoError(t, err)
		assert.JSONEq(t, `["a","b"]`, string(got))
	})

	t.Run("prefix scan", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "post:b", []byte(`{"id":"b"}`)))
		require.NoError(t, s.Set(ctx, "post:a", []byte(`{"id":"a"}`)))
		require.NoError(t, s.Set(ctx, "postx:c", []byte(`{"id":"c"}`)))

		entries, err := s.ScanPrefix(ctx, "post:")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "post:a", entries[0].Key)
		assert.Equal(t, "post:b", entries[1].Key)
		assert.JSONEq(t, `{"id":"a"}`, string(entries[0].Value))
	})

	t.Run("prefix with underscore is literal", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "userXposts:1", []byte(`[]`)))
		entries, err := s.ScanPrefix(ctx, "user_posts:")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "user_posts:1", entries[0].Key)
	})

	t.Run("empty scan", func(t *testing.T) {
		entries, err := s.ScanPrefix(ctx, "conversation:")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "user:1"))
		_, err := s.Get(ctx, "user:1")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, s.Delete(ctx, "user:1"))
	})

	t.Run("json helpers", func(t *testing.T) {
		type rec struct {
			Name string `json:"name"`
		}
		require.NoError(t, SetJSON(ctx, s, "user:2", rec{Name: "Julia"}))
		var got rec
		found, err := GetJSON(ctx, s, "user:2", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Julia", got.Name)

		found, err = GetJSON(ctx, s, "user:3", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	value := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "k", value))
	value[2] = 'b'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestBadgerStore(t *testing.T) {
	db, err := OpenBadger("", true)
	require.NoError(t, err)
	defer db.Close()

	runStoreSuite(t, NewBadgerStore(db))
}

func TestOpenBadgerRequiresPath(t *testing.T) {
	_, err := OpenBadger("", false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}

func TestGormStore(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	s, err := NewGormStore(db)
	require.NoError(t, err)
	runStoreSuite(t, s)
}

func TestEscapes(t *testing.T) {
	assert.Equal(t, `user\_posts:`, escapeLike("user_posts:"))
	assert.Equal(t, `100\%\\`, escapeLike(`100%\`))
	assert.Equal(t, `a\*b\?\[c\]`, escapeGlob("a*b?[c]"))
}
