package bus

import (
	"sync"
	"sync/atomic"

	"afisha/internal/ports/output"
)

var _ output.Bus[struct{}] = (*Bus[struct{}])(nil)

type subscription[T any] struct {
	handler func(T)
	active  atomic.Bool
}

// Bus delivers every published message synchronously, in subscription order,
// to the handlers registered at publish time. There is no queue and no replay:
// a late subscriber must read the current state itself.
type Bus[T any] struct {
	mu   sync.Mutex
	subs []*subscription[T]
}

// New creates an empty Bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers handler. The returned function is idempotent.
func (b *Bus[T]) Subscribe(handler func(T)) func() {
	sub := &subscription[T]{handler: handler}
	sub.active.Store(true)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return func() {
		if !sub.active.CompareAndSwap(true, false) {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s == sub {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				break
			}
		}
	}
}

// Publish invokes each registered handler once. A handler removed while the
// delivery is running is skipped.
func (b *Bus[T]) Publish(msg T) {
	b.mu.Lock()
	snapshot := make([]*subscription[T], len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, sub := range snapshot {
		if sub.active.Load() {
			sub.handler(msg)
		}
	}
}

// Len returns the number of active subscriptions.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
