package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"afisha/internal/domain"
	"afisha/internal/domain/entities"
	"afisha/internal/ports/input"
	"afisha/internal/ports/output"
)

var _ input.ParticipationUseCase = (*ParticipationService)(nil)

// ParticipationService drives the per-event participation state machine:
// idle → confirming → confirmed, confirmed → cancelling → idle, and back to
// idle when a confirmation fails.
//
// Cancelling is local only: the backend has no cancellation endpoint, so the
// order stays on the server and only the local record is removed.
type ParticipationService struct {
	events output.EventAPI
	store  *ParticipationStore
	bus    output.Bus[entities.ParticipationChange]
	logger *slog.Logger

	mu       sync.Mutex
	inFlight map[int64]domain.ActionState

	now    func() time.Time
	newKey func() string
}

func NewParticipationService(
	events output.EventAPI,
	store *ParticipationStore,
	bus output.Bus[entities.ParticipationChange],
	logger *slog.Logger,
) *ParticipationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParticipationService{
		events:   events,
		store:    store,
		bus:      bus,
		logger:   logger,
		inFlight: make(map[int64]domain.ActionState),
		now:      time.Now,
		newKey:   uuid.NewString,
	}
}

// CheckConfirm runs the confirmation guards in order: past, full, email.
func (s *ParticipationService) CheckConfirm(event *entities.Event, email string, now time.Time) error {
	if event == nil {
		return domain.ErrEventUnavailable
	}
	if event.IsPast(now) {
		return domain.ErrEventPast
	}
	if event.IsFull() {
		return domain.ErrEventFull
	}
	if strings.TrimSpace(email) == "" {
		return domain.ErrEmailRequired
	}
	return nil
}

// Confirm orders a participation and records it locally once the backend accepted it.
func (s *ParticipationService) Confirm(ctx context.Context, event *entities.Event, email string) (*entities.OrderConfirmation, error) {
	if err := s.CheckConfirm(event, email, s.now()); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if !s.acquire(event.ID, domain.StateConfirming) {
		return nil, domain.ErrActionInFlight
	}
	defer s.release(event.ID)

	confirmation, err := s.events.CreateOrder(ctx, entities.OrderRequest{
		EventID:        event.ID,
		Email:          email,
		PeopleCount:    domain.DefaultPeopleCount,
		PaymentMethod:  domain.PaymentMethodOnline,
		IdempotencyKey: s.newKey(),
	})
	if err != nil {
		s.logger.Info("participation not confirmed", "event_id", event.ID, "error", err)
		return nil, fmt.Errorf("confirm participation %d: %w", event.ID, err)
	}

	s.store.Put(ctx, event.ID, email, s.now())
	s.bus.Publish(entities.ParticipationChange{EventID: event.ID, Kind: entities.ChangeConfirmed})
	return confirmation, nil
}

// Cancel removes the local participation record of the event.
func (s *ParticipationService) Cancel(ctx context.Context, eventID int64) error {
	if !s.acquire(eventID, domain.StateCancelling) {
		return domain.ErrActionInFlight
	}
	defer s.release(eventID)

	if !s.store.Remove(ctx, eventID) {
		return domain.ErrNotParticipating
	}
	s.bus.Publish(entities.ParticipationChange{EventID: eventID, Kind: entities.ChangeCancelled})
	return nil
}

// State returns the in-flight state of the event, or the settled one read from the store.
func (s *ParticipationService) State(ctx context.Context, eventID int64) domain.ActionState {
	s.mu.Lock()
	state, busy := s.inFlight[eventID]
	s.mu.Unlock()
	if busy {
		return state
	}
	if s.store.IsParticipating(ctx, eventID) {
		return domain.StateConfirmed
	}
	return domain.StateIdle
}

func (s *ParticipationService) acquire(eventID int64, state domain.ActionState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[eventID]; busy {
		return false
	}
	s.inFlight[eventID] = state
	return true
}

func (s *ParticipationService) release(eventID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, eventID)
}
