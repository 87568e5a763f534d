package output

import "context"

// ClientStateStorage persists the client-side string blobs (participation map,
// session, selected city) under plain string keys.
type ClientStateStorage interface {
	// Get returns the value stored under key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ChangeWatcher reports keys written by other storage handles (another
// process sharing the same storage). Writes of the watching handle are not echoed.
type ChangeWatcher interface {
	// Watch blocks until ctx is done, calling onChange for every external write.
	Watch(ctx context.Context, onChange func(key string)) error
}
