package metrics

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// counterStore keeps lifetime counters in the metrics table.
type counterStore struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a MetricsStore on db. The metrics table must already exist.
func New(db *sql.DB) MetricsStore {
	return &counterStore{
		db: db,
	}
}

// Increment bumps key by one. Failures are logged; a lost count never
// blocks the caller.
func (s *counterStore) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1`, key)
	if err != nil {
		log.Error("Failed to increment lifetime counter", "key", key, "error", err)
		return
	}
	log.Debug("Incremented lifetime counter", "key", key)
}

func (s *counterStore) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("reading lifetime counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			value int
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning lifetime counter: %w", err)
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
