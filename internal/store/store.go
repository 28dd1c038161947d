package store

import (
	"context"
	"sync"
)

// Store is a namespaced key-value blob store. Values are JSON-serialized
// records; readers get ErrNotFound semantics via the found flag rather than
// an error. It is the Go stand-in for the browser's localStorage: a cache,
// not a ledger of record.
type Store interface {
	// Get reads the value at key into dest. Returns false when the key is
	// absent.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set writes value at key, JSON-serialized, replacing any previous value.
	Set(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// keyLocks serializes read-modify-write cycles per key within this process.
// The original client accepted lost updates between concurrent callers; the
// gateway closes that window for a single instance.
var keyLocks sync.Map

// Update performs read-modify-write on key as one logical operation. dest
// must be a pointer to the zero value of the stored record; mutate receives
// whether the key existed and edits dest in place. The mutated dest is
// written back unless mutate returns an error.
func Update(ctx context.Context, s Store, key string, dest any, mutate func(found bool) error) error {
	lockAny, _ := keyLocks.LoadOrStore(key, &sync.Mutex{})
	lock := lockAny.(*sync.Mutex)
	lock.Lock()
	defer lock.Unlock()

	found, err := s.Get(ctx, key, dest)
	if err != nil {
		return err
	}
	if err := mutate(found); err != nil {
		return err
	}
	return s.Set(ctx, key, dest)
}
