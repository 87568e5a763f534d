package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"afisha/internal/domain/entities"
	"afisha/internal/ports/input"
	"afisha/internal/ports/output"
	"afisha/pkg/tz"
)

var _ input.EventUseCase = (*EventService)(nil)

const (
	UpcomingDays   = 7
	UpcomingLimit  = 100
	AfishaLimit    = 10
	SearchLimit    = 100
	searchHorizon  = 365 * 24 * time.Hour
	defaultWorkers = 4
)

// Categories are the afisha sections, matched against event names and descriptions.
var Categories = []string{
	"Кино",
	"Концерты",
	"Вечеринки",
	"Детская афиша",
	"Спектакли",
	"События",
	"Бесплатные мероприятия",
	"Спорт",
}

type EventService struct {
	api     output.EventAPI
	loc     *time.Location
	workers int
	logger  *slog.Logger
	now     func() time.Time
}

// NewEventService creates the listing service. workers bounds the concurrent
// fetches of ParticipatedEvents.
func NewEventService(api output.EventAPI, loc *time.Location, workers int, logger *slog.Logger) *EventService {
	if loc == nil {
		loc = tz.Moscow
	}
	if workers < 1 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{api: api, loc: loc, workers: workers, logger: logger, now: time.Now}
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*entities.Event, error) {
	return s.api.GetEventByID(ctx, id)
}

// Upcoming lists events from today 00:00 up to days ahead.
func (s *EventService) Upcoming(ctx context.Context, days int) ([]entities.Event, error) {
	if days <= 0 {
		days = UpcomingDays
	}
	start := tz.StartOfDay(s.now(), s.loc)
	events, err := s.api.EventsBetween(ctx, start, start.AddDate(0, 0, days), UpcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

// Afisha lists the headline events of the coming month.
func (s *EventService) Afisha(ctx context.Context, limit int) ([]entities.Event, error) {
	if limit <= 0 {
		limit = AfishaLimit
	}
	start := tz.StartOfDay(s.now(), s.loc)
	events, err := s.api.EventsBetween(ctx, start, start.AddDate(0, 1, 0), limit)
	if err != nil {
		return nil, fmt.Errorf("list afisha: %w", err)
	}
	return events, nil
}

func (s *EventService) Search(ctx context.Context, query string) ([]entities.Event, error) {
	start := tz.StartOfDay(s.now(), s.loc)
	events, err := s.api.EventsBetween(ctx, start, start.Add(searchHorizon), SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	found := make([]entities.Event, 0, len(events))
	for _, e := range events {
		if e.Matches(query) {
			found = append(found, e)
		}
	}
	return found, nil
}

// ParticipatedEvents fetches every event of the participation map. Each fetch
// settles on its own: failed ones are logged and left out, the others keep the
// map key order.
func (s *EventService) ParticipatedEvents(ctx context.Context, participation entities.ParticipationMap) []entities.Event {
	ids := participation.EventIDs()
	results := make([]*entities.Event, len(ids))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, id := range ids {
		g.Go(func() error {
			event, err := s.api.GetEventByID(ctx, id)
			if err != nil {
				s.logger.Warn("participated event not loaded", "event_id", id, "error", err)
				return nil
			}
			results[i] = event
			return nil
		})
	}
	_ = g.Wait()

	events := make([]entities.Event, 0, len(ids))
	for _, e := range results {
		if e != nil {
			events = append(events, *e)
		}
	}
	return events
}

// FilterByCity keeps the events of city; an empty city keeps everything.
func FilterByCity(events []entities.Event, city string) []entities.Event {
	city = strings.TrimSpace(city)
	if city == "" {
		return events
	}
	out := make([]entities.Event, 0, len(events))
	for _, e := range events {
		if strings.EqualFold(strings.TrimSpace(e.City), city) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByCategories keeps the events mentioning at least one of the categories.
func FilterByCategories(events []entities.Event, categories []string) []entities.Event {
	if len(categories) == 0 {
		return events
	}
	out := make([]entities.Event, 0, len(events))
	for _, e := range events {
		for _, c := range categories {
			if e.Mentions(c) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// SplitActivePast separates events that have not started yet from the others.
func SplitActivePast(events []entities.Event, now time.Time) (active, past []entities.Event) {
	for _, e := range events {
		if e.StartsAt.After(now) {
			active = append(active, e)
		} else {
			past = append(past, e)
		}
	}
	return active, past
}
