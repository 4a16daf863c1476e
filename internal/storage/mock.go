package storage

import (
	"sort"
	"strings"
	"sync"
)

// MockStore is an in-memory Store for testing. Setting a ...Func overrides
// the in-memory behavior of that method. It is safe for concurrent use.
type MockStore struct {
	mu   sync.Mutex
	data map[string][]byte

	GetFunc    func(key string) ([]byte, error)
	PutFunc    func(key string, value []byte) error
	DeleteFunc func(key string) error
	KeysFunc   func(prefix string) ([]string, error)

	// Call records
	PutCalls    []string
	DeleteCalls []string
}

// NewMock creates an empty mock store.
func NewMock() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

func (m *MockStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MockStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls = append(m.PutCalls, key)
	if m.PutFunc != nil {
		if err := m.PutFunc(key, value); err != nil {
			return err
		}
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MockStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, key)
	if m.DeleteFunc != nil {
		if err := m.DeleteFunc(key); err != nil {
			return err
		}
	}
	delete(m.data, key)
	return nil
}

// Update goes through PutFunc so tests can fail list writes too.
func (m *MockStore) Update(key string, fn func(current []byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := fn(m.data[key])
	if err != nil {
		return err
	}
	m.PutCalls = append(m.PutCalls, key)
	if next == nil {
		delete(m.data, key)
		return nil
	}
	if m.PutFunc != nil {
		if err := m.PutFunc(key, next); err != nil {
			return err
		}
	}
	m.data[key] = append([]byte(nil), next...)
	return nil
}

func (m *MockStore) Keys(prefix string) ([]string, error) {
	if m.KeysFunc != nil {
		return m.KeysFunc(prefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Has reports whether key currently holds a value.
func (m *MockStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}
