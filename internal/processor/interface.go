package processor

import (
	"context"

	"github.com/mauv0809/courtside/internal/game"
)

// Session is the live game the processor submits.
type Session interface {
	BeginSubmit() (game.Details, game.Stats, error)
	CompleteSubmit() error
	FailSubmit(err error)
}

// Library rebuilds the displayed game list.
type Library interface {
	Refresh() ([]game.Record, error)
}

// Exporter sends a saved game to a user-configured URL.
type Exporter interface {
	Send(ctx context.Context, url string, rec game.Record) error
}
