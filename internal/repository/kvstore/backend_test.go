package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisTestBackend(t *testing.T) (Backend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBackend(client), mr
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	file, err := NewFileBackend(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	rb, _ := newRedisTestBackend(t)
	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   file,
		"redis":  rb,
	}
}

func TestBackend_GetSet(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := b.Get(ctx, "users")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, b.Set(ctx, "users", []byte(`[{"id":"u1"}]`)))
			got, ok, err := b.Get(ctx, "users")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `[{"id":"u1"}]`, string(got))

			require.NoError(t, b.Set(ctx, "users", []byte(`[]`)))
			got, _, err = b.Get(ctx, "users")
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, string(got))
		})
	}
}

func TestFileBackend_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	b, err := NewFileBackend(path)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "events", []byte(`[{"id":"e1"}]`)))

	reopened, err := NewFileBackend(path)
	require.NoError(t, err)
	got, ok, err := reopened.Get(ctx, "events")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"e1"}]`, string(got))
}

func TestFileBackend_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileBackend(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode store file")
}

func TestFileBackend_RejectsInvalidJSON(t *testing.T) {
	b, err := NewFileBackend(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	assert.Error(t, b.Set(context.Background(), "users", []byte("nope")))
}

func TestRedisBackend_UsesPrefixedKeys(t *testing.T) {
	b, mr := newRedisTestBackend(t)
	require.NoError(t, b.Set(context.Background(), "users", []byte(`[]`)))

	v, err := mr.Get("campusevents:users")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestMemoryBackend_CopiesValues(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	in := []byte(`"a"`)
	require.NoError(t, b.Set(ctx, "k", in))
	in[1] = 'b'

	got, _, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(got))
}
