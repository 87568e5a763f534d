package application

import (
	"context"
	"sync"
	"sync/atomic"

	"afisha/internal/domain/entities"
	"afisha/internal/ports/input"
	"afisha/internal/ports/output"
)

// participatedList loads the events of the participation map and is marked
// stale by every participation change.
type participatedList struct {
	events input.EventUseCase
	store  *ParticipationStore

	mu    sync.Mutex
	items []entities.Event

	changed     chan struct{}
	alive       atomic.Bool
	unsubscribe func()
}

func newParticipatedList(events input.EventUseCase, store *ParticipationStore, bus output.Bus[entities.ParticipationChange]) *participatedList {
	l := &participatedList{
		events:  events,
		store:   store,
		changed: make(chan struct{}, 1),
	}
	l.alive.Store(true)
	l.unsubscribe = bus.Subscribe(func(entities.ParticipationChange) {
		select {
		case l.changed <- struct{}{}:
		default:
		}
	})
	return l
}

// refresh re-reads the store and fetches its events.
func (l *participatedList) refresh(ctx context.Context) []entities.Event {
	items := l.events.ParticipatedEvents(ctx, l.store.Load(ctx))
	if !l.alive.Load() {
		return nil
	}
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return l.snapshot()
}

func (l *participatedList) snapshot() []entities.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]entities.Event, len(l.items))
	copy(out, l.items)
	return out
}

func (l *participatedList) close() {
	if l.alive.CompareAndSwap(true, false) {
		l.unsubscribe()
	}
}
