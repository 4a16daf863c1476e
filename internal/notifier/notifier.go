package notifier

import (
	"context"

	"github.com/mauv0809/courtside/internal/game"
)

// Notifier posts game events to a chat channel.
type Notifier interface {
	// NotifyGameSaved posts a box-score summary of a submitted game.
	NotifyGameSaved(ctx context.Context, rec game.Record) error
}
