package application

import (
	"sort"
	"time"

	"afisha/internal/domain/entities"
)

// SoonWindow is the lookahead of the reminders.
const SoonWindow = 24 * time.Hour

// SoonEvents keeps the events starting within (now, now+SoonWindow], sorted by
// time to start.
func SoonEvents(events []entities.Event, now time.Time) []entities.SoonEvent {
	soon := make([]entities.SoonEvent, 0, len(events))
	for _, e := range events {
		if e.StartsAt.IsZero() {
			continue
		}
		until := e.Until(now)
		if until > 0 && until <= SoonWindow {
			soon = append(soon, entities.SoonEvent{Event: e, Until: until})
		}
	}
	sort.SliceStable(soon, func(i, j int) bool { return soon[i].Until < soon[j].Until })
	return soon
}
