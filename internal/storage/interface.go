package storage

// Store is durable local storage for independent keyed blobs.
type Store interface {
	// Get returns ErrNotFound when the key has never been written.
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	// Update runs fn on the current value (nil when absent) and stores the
	// result in the same transaction. Returning a nil slice deletes the key.
	Update(key string, fn func(current []byte) ([]byte, error)) error
	Keys(prefix string) ([]string, error)
}
