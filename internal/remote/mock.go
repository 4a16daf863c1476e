package remote

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/game"
)

// MockStore is an in-memory Store for testing. It is safe for concurrent use.
type MockStore struct {
	mu     sync.Mutex
	docs   map[string]game.Record
	subs   []chan []game.Record
	nextID int
	// Now stamps appended records; defaults to time.Now.
	Now func() time.Time

	NewIDFunc  func(ctx context.Context) (string, error)
	AppendFunc func(ctx context.Context, rec game.Record) error
	DeleteFunc func(ctx context.Context, id string) error

	// Call records
	AppendCalls   []game.Record
	BackfillCalls []game.Record
	DeleteCalls   []string
}

// NewMock creates an empty mock store.
func NewMock() *MockStore {
	return &MockStore{docs: make(map[string]game.Record), Now: time.Now}
}

func (m *MockStore) NewID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NewIDFunc != nil {
		return m.NewIDFunc(ctx)
	}
	m.nextID++
	return fmt.Sprintf("remote-%d", m.nextID), nil
}

func (m *MockStore) Append(ctx context.Context, rec game.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCalls = append(m.AppendCalls, rec)
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, rec); err != nil {
			return err
		}
	}
	rec.CreatedAt = m.Now().UTC().Format(time.RFC3339Nano)
	m.docs[rec.ID] = rec
	m.broadcastLocked()
	return nil
}

// Backfill keeps rec.CreatedAt when it parses and stamps Now otherwise.
func (m *MockStore) Backfill(ctx context.Context, rec game.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackfillCalls = append(m.BackfillCalls, rec)
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, rec); err != nil {
			return err
		}
	}
	if rec.CreatedAtMillis() <= 0 {
		rec.CreatedAt = m.Now().UTC().Format(time.RFC3339Nano)
	}
	m.docs[rec.ID] = rec
	m.broadcastLocked()
	return nil
}

func (m *MockStore) Replace(ctx context.Context, rec game.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.docs[rec.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, rec.ID)
	}
	rec.CreatedAt = old.CreatedAt
	m.docs[rec.ID] = rec
	m.broadcastLocked()
	return nil
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteFunc != nil {
		if err := m.DeleteFunc(ctx, id); err != nil {
			return err
		}
	}
	delete(m.docs, id)
	m.broadcastLocked()
	return nil
}

func (m *MockStore) Subscribe(ctx context.Context) (<-chan []game.Record, <-chan error, error) {
	m.mu.Lock()
	ch := make(chan []game.Record, 16)
	m.subs = append(m.subs, ch)
	ch <- m.listLocked()
	m.mu.Unlock()

	errs := make(chan error)
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				break
			}
		}
		close(ch)
		close(errs)
	}()
	return ch, errs, nil
}

// Seed stores records as if they had been appended earlier, keeping their
// CreatedAt.
func (m *MockStore) Seed(records ...game.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		m.docs[r.ID] = r
	}
	m.broadcastLocked()
}

// Records returns the stored documents newest-first.
func (m *MockStore) Records() []game.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listLocked()
}

func (m *MockStore) listLocked() []game.Record {
	out := make([]game.Record, 0, len(m.docs))
	for _, r := range m.docs {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAtMillis() > out[j].CreatedAtMillis()
	})
	return out
}

func (m *MockStore) broadcastLocked() {
	list := m.listLocked()
	for _, ch := range m.subs {
		select {
		case ch <- list:
		default:
		}
	}
}
