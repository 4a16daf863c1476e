package library

import "github.com/mauv0809/courtside/internal/game"

// LocalCache is the locally cached list of saved games. Every write is a
// whole-list read-modify-write.
type LocalCache interface {
	List() ([]game.Record, error)
	// Upsert appends rec, or replaces the entry with the same id.
	Upsert(rec game.Record) error
	UpsertMany(recs []game.Record) error
	Delete(id string) error
}
