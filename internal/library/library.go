package library

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/remote"
)

// New creates a Library over the local cache. Until a remote list arrives
// the display list is local-only.
func New(local LocalCache, metrics metrics.Metrics) *Library {
	return &Library{
		local:   local,
		metrics: metrics,
		display: []game.Record{},
	}
}

// List returns the current display list.
func (l *Library) List() []game.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.display)
}

// Remote reports whether a remote list has been received.
func (l *Library) Remote() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hasRemote
}

// OnRemoteUpdate records a new remote list and rebuilds the display list.
func (l *Library) OnRemoteUpdate(list []game.Record) ([]game.Record, error) {
	l.mu.Lock()
	l.remote = slices.Clone(list)
	l.hasRemote = true
	l.mu.Unlock()
	return l.Refresh()
}

// Refresh re-reads the local cache and merges it with the last remote list.
func (l *Library) Refresh() ([]game.Record, error) {
	local, err := l.local.List()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.display = Merge(l.remote, local)
	l.metrics.SetGamesListed(len(l.display))
	log.Debug("Rebuilt game list", "remote", len(l.remote), "local", len(local), "shown", len(l.display))
	return slices.Clone(l.display), nil
}

// Watch feeds remote list updates into the library until ctx is done.
// Failing to subscribe leaves the library local-only; errors on an open
// subscription are logged and the last remote list stays in use.
func (l *Library) Watch(ctx context.Context, store remote.Store) {
	lists, errs, err := store.Subscribe(ctx)
	if err != nil {
		l.metrics.IncRemoteSyncErrors()
		log.Error("Remote store subscription failed, using local games only", "error", err)
		return
	}
	log.Info("Watching remote store for game updates")
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			l.metrics.IncRemoteSyncErrors()
			log.Error("Remote store update failed", "error", err)
		case list, ok := <-lists:
			if !ok {
				log.Info("Remote store subscription ended")
				return
			}
			if _, err := l.OnRemoteUpdate(list); err != nil {
				log.Error("Failed to merge remote games", "error", err)
			}
		}
	}
}
