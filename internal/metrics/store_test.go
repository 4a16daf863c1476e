package metrics

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/mauv0809/courtside/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) MetricsStore {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "metrics.db"), "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return New(db)
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestDB(t)

	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	store.Increment(KeyGamesSaved)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyGamesSaved: 1}, counters)

	store.Increment(KeyGamesSaved)
	store.Increment(KeyGamesImported)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyGamesSaved:    2,
		KeyGamesImported: 1,
	}, counters)
}

func TestIncrement_Concurrent(t *testing.T) {
	store := setupTestDB(t)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Increment(KeyGamesDeleted)
		}()
	}
	wg.Wait()

	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 20, counters[KeyGamesDeleted])
}
