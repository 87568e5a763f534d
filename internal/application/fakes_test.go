package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
	"afisha/internal/infrastructure/bus"
	"afisha/internal/infrastructure/storage"
)

var errBackend = errors.New("backend down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventAPI serves events from memory and records orders.
type fakeEventAPI struct {
	mu        sync.Mutex
	events    map[int64]entities.Event
	failIDs   map[int64]bool
	orderErr  error
	orders    []entities.OrderRequest
	between   []entities.Event
	getCalls  int
	orderGate chan struct{} // when set, CreateOrder blocks until closed
}

func newFakeEventAPI(events ...entities.Event) *fakeEventAPI {
	f := &fakeEventAPI{events: make(map[int64]entities.Event), failIDs: make(map[int64]bool)}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeEventAPI) GetEventByID(_ context.Context, id int64) (*entities.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.failIDs[id] {
		return nil, domain.ErrEventUnavailable
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrEventUnavailable
	}
	return &e, nil
}

func (f *fakeEventAPI) EventsBetween(_ context.Context, start, end time.Time, _ int) ([]entities.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Event, 0, len(f.between))
	for _, e := range f.between {
		if !e.StartsAt.Before(start) && !e.StartsAt.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventAPI) CreateOrder(_ context.Context, order entities.OrderRequest) (*entities.OrderConfirmation, error) {
	f.mu.Lock()
	gate := f.orderGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return &entities.OrderConfirmation{OrderID: int64(len(f.orders)), EventID: order.EventID, Email: order.Email}, nil
}

func (f *fakeEventAPI) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type participationFixture struct {
	storage *storage.Memory
	api     *fakeEventAPI
	store   *ParticipationStore
	bus     *bus.Bus[entities.ParticipationChange]
	service *ParticipationService
	events  *EventService
	now     time.Time
}

func newParticipationFixture(events ...entities.Event) *participationFixture {
	f := &participationFixture{
		storage: storage.NewMemory(),
		api:     newFakeEventAPI(events...),
		bus:     bus.New[entities.ParticipationChange](),
		now:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.store = NewParticipationStore(f.storage, discardLogger())
	f.service = NewParticipationService(f.api, f.store, f.bus, discardLogger())
	f.service.now = func() time.Time { return f.now }
	f.service.newKey = func() string { return "key" }
	f.events = NewEventService(f.api, time.UTC, 2, discardLogger())
	f.events.now = func() time.Time { return f.now }
	return f
}
