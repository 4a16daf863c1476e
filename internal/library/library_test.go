package library

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/remote"
	"github.com/mauv0809/courtside/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLibrary(t *testing.T) (*Library, LocalCache, *metrics.Mock) {
	t.Helper()
	local := NewLocalCache(storage.NewMock())
	m := metrics.NewMock()
	return New(local, m), local, m
}

func TestLibrary_LocalOnlyUntilRemoteArrives(t *testing.T) {
	lib, local, m := setupLibrary(t)
	require.NoError(t, local.Upsert(rec("local_1", "2024-01-01T00:00:00Z", "A")))

	list, err := lib.Refresh()
	require.NoError(t, err)
	assert.Equal(t, []string{"local_1"}, ids(list))
	assert.False(t, lib.Remote())
	assert.Equal(t, 1, m.GamesListed())
}

func TestLibrary_OnRemoteUpdate(t *testing.T) {
	lib, local, m := setupLibrary(t)
	require.NoError(t, local.UpsertMany([]game.Record{
		rec("abc", "2024-03-01T00:00:00Z", "Local"),
		rec("local_2", "2024-03-05T00:00:00Z", "Local"),
	}))

	list, err := lib.OnRemoteUpdate([]game.Record{
		rec("abc", "2024-03-02T00:00:00Z", "Remote"),
		rec("r2", "2024-02-01T00:00:00Z", "Remote"),
	})
	require.NoError(t, err)
	assert.True(t, lib.Remote())
	assert.Equal(t, []string{"local_2", "abc", "r2"}, ids(list))
	assert.Equal(t, "Remote", list[1].HomeTeam)
	assert.Equal(t, list, lib.List())
	assert.Equal(t, 3, m.GamesListed())

	// A local write after the remote list keeps the remote entries visible.
	require.NoError(t, local.Upsert(rec("local_3", "2024-04-01T00:00:00Z", "Local")))
	list, err = lib.Refresh()
	require.NoError(t, err)
	assert.Equal(t, []string{"local_3", "local_2", "abc", "r2"}, ids(list))
}

func TestLibrary_Watch(t *testing.T) {
	lib, _, m := setupLibrary(t)
	store := remote.NewMock()
	store.Seed(rec("r1", "2024-01-01T00:00:00Z", "A"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		lib.Watch(ctx, store)
	}()

	require.Eventually(t, func() bool {
		return len(lib.List()) == 1
	}, time.Second, 10*time.Millisecond)

	store.Seed(rec("r2", "2024-02-01T00:00:00Z", "B"))
	require.Eventually(t, func() bool {
		list := lib.List()
		return len(list) == 2 && list[0].ID == "r2"
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	assert.Equal(t, 0, m.RemoteSyncErrors())
	assert.Len(t, lib.List(), 2)
}

type failingRemote struct {
	remote.Store
}

func (failingRemote) Subscribe(context.Context) (<-chan []game.Record, <-chan error, error) {
	return nil, nil, assert.AnError
}

func TestLibrary_WatchSubscribeFailure(t *testing.T) {
	lib, _, m := setupLibrary(t)
	lib.Watch(context.Background(), failingRemote{})
	assert.Equal(t, 1, m.RemoteSyncErrors())
	assert.False(t, lib.Remote())
}
