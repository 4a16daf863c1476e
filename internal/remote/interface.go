package remote

import (
	"context"

	"github.com/mauv0809/courtside/internal/game"
)

// Store is the per-user cloud document store holding saved games.
type Store interface {
	// NewID pre-allocates a document id so local and remote copies share it.
	NewID(ctx context.Context) (string, error)
	// Append creates the document under rec.ID, stamping a server-assigned
	// creation time.
	Append(ctx context.Context, rec game.Record) error
	// Backfill creates the document keeping rec.CreatedAt, for games played
	// before they reached the store. An unparseable CreatedAt falls back to
	// server time.
	Backfill(ctx context.Context, rec game.Record) error
	Replace(ctx context.Context, rec game.Record) error
	Delete(ctx context.Context, id string) error
	// Subscribe streams the full newest-first list on subscription and
	// after every change, until ctx is done. Both channels are closed on
	// teardown.
	Subscribe(ctx context.Context) (<-chan []game.Record, <-chan error, error)
}
