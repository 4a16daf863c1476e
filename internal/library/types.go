package library

import (
	"errors"
	"sync"

	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/storage"
)

// ErrCorruptCache is returned by writes when the stored list cannot be
// decoded; writing would silently drop every game in it.
var ErrCorruptCache = errors.New("local game list is corrupt")

// localCache keeps the list as a JSON array under storage.KeyGames.
type localCache struct {
	store storage.Store
}

// Library produces the displayed game history from the local cache and the
// most recent remote list.
type Library struct {
	local   LocalCache
	metrics metrics.Metrics

	mu        sync.RWMutex
	remote    []game.Record
	hasRemote bool
	display   []game.Record
}
