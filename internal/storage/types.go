package storage

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for keys that have not been written.
var ErrNotFound = errors.New("key not found")

// Keys of the blobs the application keeps.
const (
	KeyGames          = "games"
	KeySession        = "session"
	KeySettingsPrefix = "settings."
)

// store is a Store backed by the kv table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
