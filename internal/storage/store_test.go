package storage_test

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary SQLite database for testing.
func setupTestDB(t *testing.T) storage.Store {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "storage.db"), "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return storage.New(db)
}

func TestPutGetDelete(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Put("a", []byte(`{"x":1}`)))
	require.NoError(t, store.Put("a", []byte(`{"x":2}`)))
	v, err := store.Get("a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":2}`, string(v))

	require.NoError(t, store.Delete("a"))
	_, err = store.Get("a")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	store := setupTestDB(t)

	t.Run("concurrent updates compose", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.Update("counter", func(cur []byte) ([]byte, error) {
					return append(cur, 'x'), nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		v, err := store.Get("counter")
		require.NoError(t, err)
		assert.Len(t, v, 20)
	})

	t.Run("error leaves value untouched", func(t *testing.T) {
		require.NoError(t, store.Put("keep", []byte("original")))
		boom := errors.New("boom")
		err := store.Update("keep", func(cur []byte) ([]byte, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)

		v, err := store.Get("keep")
		require.NoError(t, err)
		assert.Equal(t, "original", string(v))
	})

	t.Run("nil result deletes", func(t *testing.T) {
		require.NoError(t, store.Put("gone", []byte("soon")))
		require.NoError(t, store.Update("gone", func([]byte) ([]byte, error) { return nil, nil }))
		_, err := store.Get("gone")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestKeys(t *testing.T) {
	store := setupTestDB(t)
	require.NoError(t, store.Put("settings.teamName", []byte(`"Hawks"`)))
	require.NoError(t, store.Put("settings.playerName", []byte(`"Sam"`)))
	require.NoError(t, store.Put("games", []byte(`[]`)))

	keys, err := store.Keys(storage.KeySettingsPrefix)
	require.NoError(t, err)
	assert.Equal(t, []string{"settings.playerName", "settings.teamName"}, keys)
}
