package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/courtside/internal/game"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	NotifyGameSavedFunc func(ctx context.Context, rec game.Record) error

	// Call records
	NotifyGameSavedCalls []game.Record
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyGameSavedCalls = nil
}

func (m *Mock) NotifyGameSaved(ctx context.Context, rec game.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyGameSavedCalls = append(m.NotifyGameSavedCalls, rec)
	if m.NotifyGameSavedFunc != nil {
		return m.NotifyGameSavedFunc(ctx, rec)
	}
	return nil
}

// Calls returns a copy of the recorded NotifyGameSaved calls.
func (m *Mock) Calls() []game.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]game.Record(nil), m.NotifyGameSavedCalls...)
}
