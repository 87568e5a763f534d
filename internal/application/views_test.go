package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afisha/internal/domain/entities"
)

func eventIDs(events []entities.Event) []int64 {
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestMyEventsView_RereadsStoreOnChange(t *testing.T) {
	ctx := context.Background()
	f := newParticipationFixture(
		entities.Event{ID: 1, StartsAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		entities.Event{ID: 2, StartsAt: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
	)
	f.store.Put(ctx, 2, "a@x.ru", f.now)
	f.store.Put(ctx, 1, "a@x.ru", f.now)

	view := NewMyEventsView(f.events, f.store, f.bus)
	defer view.Close()

	runCtx, cancel := context.WithCancel(ctx)
	updates := make(chan []int64, 4)
	done := make(chan error, 1)
	go func() {
		done <- view.Run(runCtx, func(events []entities.Event) { updates <- eventIDs(events) })
	}()

	assert.Equal(t, []int64{1, 2}, <-updates)

	require.NoError(t, f.service.Cancel(ctx, 1))
	select {
	case ids := <-updates:
		assert.Equal(t, []int64{2}, ids)
	case <-time.After(2 * time.Second):
		t.Fatal("no refresh after cancel")
	}

	cancel()
	assert.NoError(t, <-done)
	assert.Equal(t, []int64{2}, eventIDs(view.Events()))
}

func TestMyEventsView_DropsFailedItems(t *testing.T) {
	ctx := context.Background()
	f := newParticipationFixture(entities.Event{ID: 1}, entities.Event{ID: 3})
	for _, id := range []int64{1, 2, 3} {
		f.store.Put(ctx, id, "a@x.ru", f.now)
	}
	view := NewMyEventsView(f.events, f.store, f.bus)
	defer view.Close()

	assert.Equal(t, []int64{1, 3}, eventIDs(view.Load(ctx)))
}

func TestMessagesView_SoonAndTick(t *testing.T) {
	ctx := context.Background()
	f := newParticipationFixture(
		entities.Event{ID: 1, StartsAt: f0().Add(time.Hour)},
		entities.Event{ID: 2, StartsAt: f0().Add(23 * time.Hour)},
		entities.Event{ID: 3, StartsAt: f0().Add(30 * time.Hour)},
	)
	for _, id := range []int64{1, 2, 3} {
		f.store.Put(ctx, id, "a@x.ru", f.now)
	}

	view := NewMessagesView(f.events, f.store, f.bus)
	defer view.Close()
	clock := f.now
	view.now = func() time.Time { return clock }

	soon := view.Load(ctx)
	require.Len(t, soon, 2)
	assert.Equal(t, int64(1), soon[0].Event.ID)
	assert.Equal(t, int64(2), soon[1].Event.ID)

	// seven hours later the first event has started and the third entered the window
	clock = clock.Add(7 * time.Hour)
	soon = view.Soon()
	require.Len(t, soon, 2)
	assert.Equal(t, int64(2), soon[0].Event.ID)
	assert.Equal(t, int64(3), soon[1].Event.ID)
}

func TestMessagesView_RunRecomputesOnTick(t *testing.T) {
	ctx := context.Background()
	f := newParticipationFixture(entities.Event{ID: 1, StartsAt: f0().Add(25 * time.Hour)})
	f.store.Put(ctx, 1, "a@x.ru", f.now)

	view := NewMessagesView(f.events, f.store, f.bus)
	defer view.Close()
	view.tick = 10 * time.Millisecond
	start := f.now
	calls := 0
	view.now = func() time.Time {
		calls++
		if calls > 1 {
			return start.Add(2 * time.Hour)
		}
		return start
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	updates := make(chan int, 8)
	go func() {
		_ = view.Run(runCtx, func(soon []entities.SoonEvent) { updates <- len(soon) })
	}()

	assert.Equal(t, 0, <-updates)
	select {
	case n := <-updates:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("no tick update")
	}
}

// f0 is the fixture clock.
func f0() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}
