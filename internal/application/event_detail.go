package application

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
	"afisha/internal/ports/input"
	"afisha/internal/ports/output"
)

// EventDetailSnapshot is what the event page renders.
type EventDetailSnapshot struct {
	Event         *entities.Event
	Past          bool
	Full          bool
	Participants  int
	Participating bool
	State         domain.ActionState
	Email         string
	Err           error
}

// EventDetailView is the participation-aware page of one event. It follows
// participation changes on the bus until Close.
type EventDetailView struct {
	eventID       int64
	events        input.EventUseCase
	participation *ParticipationService
	store         *ParticipationStore
	session       *SessionService

	mu            sync.Mutex
	event         *entities.Event
	participants  int
	participating bool
	email         string
	err           error

	alive       atomic.Bool
	unsubscribe func()
	now         func() time.Time
}

// NewEventDetailView subscribes to bus; session may be nil for anonymous use.
func NewEventDetailView(
	eventID int64,
	events input.EventUseCase,
	participation *ParticipationService,
	store *ParticipationStore,
	session *SessionService,
	bus output.Bus[entities.ParticipationChange],
) *EventDetailView {
	v := &EventDetailView{
		eventID:       eventID,
		events:        events,
		participation: participation,
		store:         store,
		session:       session,
		now:           time.Now,
	}
	v.alive.Store(true)
	v.unsubscribe = bus.Subscribe(func(change entities.ParticipationChange) {
		if change.EventID == 0 || change.EventID == eventID {
			v.syncStore(context.Background())
		}
	})
	return v
}

// Load fetches the event and reads the local participation. A result arriving
// after Close is dropped.
func (v *EventDetailView) Load(ctx context.Context) error {
	event, err := v.events.GetEvent(ctx, v.eventID)
	if !v.alive.Load() {
		return nil
	}
	if err != nil {
		v.mu.Lock()
		v.err = err
		v.mu.Unlock()
		return err
	}

	v.mu.Lock()
	v.event = event
	v.participants = event.PurchasedCount
	v.err = nil
	if v.session != nil {
		if u := v.session.Current(); u != nil && u.Email != "" {
			v.email = u.Email
		}
	}
	v.mu.Unlock()

	v.syncStore(ctx)
	return nil
}

func (v *EventDetailView) syncStore(ctx context.Context) {
	if !v.alive.Load() {
		return
	}
	rec, ok := v.store.Record(ctx, v.eventID)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.participating = ok
	if ok && v.email == "" {
		v.email = rec.Email
	}
}

// Confirm orders a participation. A blank email falls back to the prefilled one.
// A confirmed event must be cancelled before it can be confirmed again.
func (v *EventDetailView) Confirm(ctx context.Context, email string) error {
	v.mu.Lock()
	event := v.event
	participating := v.participating
	if strings.TrimSpace(email) == "" {
		email = v.email
	}
	v.mu.Unlock()

	if event == nil {
		return domain.ErrEventUnavailable
	}
	if participating {
		return domain.ErrAlreadyParticipating
	}
	if _, err := v.participation.Confirm(ctx, event, email); err != nil {
		v.setErr(err)
		return err
	}
	if !v.alive.Load() {
		return nil
	}

	v.mu.Lock()
	v.participants++
	v.participating = true
	v.email = strings.TrimSpace(email)
	v.err = nil
	v.mu.Unlock()
	return nil
}

func (v *EventDetailView) Cancel(ctx context.Context) error {
	if err := v.participation.Cancel(ctx, v.eventID); err != nil {
		v.setErr(err)
		return err
	}
	if !v.alive.Load() {
		return nil
	}

	v.mu.Lock()
	if v.participants > 0 {
		v.participants--
	}
	v.participating = false
	v.err = nil
	v.mu.Unlock()
	return nil
}

func (v *EventDetailView) setErr(err error) {
	if !v.alive.Load() {
		return
	}
	v.mu.Lock()
	v.err = err
	v.mu.Unlock()
}

func (v *EventDetailView) Snapshot(ctx context.Context) EventDetailSnapshot {
	state := v.participation.State(ctx, v.eventID)

	v.mu.Lock()
	defer v.mu.Unlock()
	snap := EventDetailSnapshot{
		Participants:  v.participants,
		Participating: v.participating,
		State:         state,
		Email:         v.email,
		Err:           v.err,
	}
	if v.event != nil {
		e := *v.event
		snap.Event = &e
		snap.Past = e.IsPast(v.now())
		snap.Full = e.SeatsTotal > 0 && v.participants >= e.SeatsTotal
	}
	return snap
}

// Close stops following the bus. Pending loads are discarded.
func (v *EventDetailView) Close() {
	if v.alive.CompareAndSwap(true, false) {
		v.unsubscribe()
	}
}
