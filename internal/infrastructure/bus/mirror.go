package bus

import (
	"context"

	"afisha/internal/ports/output"
)

// MirrorKey republishes msg on b every time another client writes key in the
// watched storage. It blocks until ctx is done.
func MirrorKey[T any](ctx context.Context, watcher output.ChangeWatcher, key string, b output.Bus[T], msg T) error {
	return watcher.Watch(ctx, func(changed string) {
		if changed == key {
			b.Publish(msg)
		}
	})
}
