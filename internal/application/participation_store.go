package application

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"afisha/internal/domain/entities"
	"afisha/internal/ports/output"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParticipationKey is the storage key of the participation map blob.
const ParticipationKey = "event_participation"

// ParticipationStore keeps the participation map in the client state storage.
// Reads never fail: absent, corrupt or unreadable data reads as an empty map.
// Writes are best effort and failures are only logged.
type ParticipationStore struct {
	storage output.ClientStateStorage
	logger  *slog.Logger
	mu      sync.Mutex // serializes read-modify-write cycles of this process
}

func NewParticipationStore(storage output.ClientStateStorage, logger *slog.Logger) *ParticipationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParticipationStore{storage: storage, logger: logger}
}

func (s *ParticipationStore) Load(ctx context.Context) entities.ParticipationMap {
	raw, found, err := s.storage.Get(ctx, ParticipationKey)
	if err != nil {
		s.logger.Warn("participation map unreadable", "error", err)
		return entities.ParticipationMap{}
	}
	if !found || strings.TrimSpace(raw) == "" {
		return entities.ParticipationMap{}
	}

	var m entities.ParticipationMap
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		s.logger.Debug("participation map malformed, ignoring", "error", err)
		return entities.ParticipationMap{}
	}
	if m == nil {
		return entities.ParticipationMap{}
	}
	return m
}

func (s *ParticipationStore) Save(ctx context.Context, m entities.ParticipationMap) {
	if m == nil {
		m = entities.ParticipationMap{}
	}
	payload, err := json.Marshal(m)
	if err != nil {
		s.logger.Warn("participation map not encoded", "error", err)
		return
	}
	if err := s.storage.Set(ctx, ParticipationKey, string(payload)); err != nil {
		s.logger.Warn("participation map not saved", "error", err)
	}
}

func (s *ParticipationStore) IsParticipating(ctx context.Context, eventID int64) bool {
	return s.Load(ctx).Has(eventID)
}

// Record returns the participation of the event, if any.
func (s *ParticipationStore) Record(ctx context.Context, eventID int64) (entities.ParticipationRecord, bool) {
	return s.Load(ctx).Get(eventID)
}

// Put inserts or overwrites the record of the event.
func (s *ParticipationStore) Put(ctx context.Context, eventID int64, email string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.Load(ctx)
	m.Put(entities.ParticipationRecord{EventID: eventID, Email: email, Timestamp: at.UnixMilli()})
	s.Save(ctx, m)
}

// Remove deletes the record of the event and reports whether one existed.
func (s *ParticipationStore) Remove(ctx context.Context, eventID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.Load(ctx)
	if !m.Remove(eventID) {
		return false
	}
	s.Save(ctx, m)
	return true
}
