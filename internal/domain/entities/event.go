package entities

import (
	"strings"
	"time"
)

// EventStatusFinished is the backend status of an event that already took place.
const EventStatusFinished = "finished"

// Event is an afisha entry owned by the backend. The client only reads it.
type Event struct {
	ID             int64
	Name           string
	Place          string
	City           string
	Description    string
	EventType      string
	Status         string
	LongURL        string
	MessageLink    string
	ImageURL       string
	StartsAt       time.Time
	EndsAt         time.Time // zero = not set
	Price          float64
	SeatsTotal     int
	PurchasedCount int
	AccountID      int64
}

// IsFull reports whether every seat is taken. Events without a seat limit are never full.
func (e *Event) IsFull() bool {
	return e.SeatsTotal > 0 && e.PurchasedCount >= e.SeatsTotal
}

// IsPast reports whether the event is over at now: finished status, or end time
// (start time when no end is known) before now.
func (e *Event) IsPast(now time.Time) bool {
	if e.Status == EventStatusFinished {
		return true
	}
	if !e.EndsAt.IsZero() {
		return e.EndsAt.Before(now)
	}
	if !e.StartsAt.IsZero() {
		return e.StartsAt.Before(now)
	}
	return false
}

// Until returns the time left before the event starts.
func (e *Event) Until(now time.Time) time.Duration {
	return e.StartsAt.Sub(now)
}

// HeroImage picks the first absolute http(s) image reference of the event.
func (e *Event) HeroImage() string {
	for _, candidate := range []string{e.MessageLink, e.LongURL, e.ImageURL} {
		if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
			return candidate
		}
	}
	return ""
}

// Mentions reports whether term appears, case-insensitively, in the name or the description.
func (e *Event) Mentions(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.Description), term)
}

// Matches reports whether query appears in the name, place, city or description.
func (e *Event) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{e.Name, e.Place, e.City, e.Description} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// EventDraft carries the fields required by the backend to create an event.
type EventDraft struct {
	Name           string
	Place          string
	City           string
	Description    string
	EventType      string
	LongURL        string
	MessageLink    string
	StartsAt       time.Time
	Price          float64
	SeatsTotal     int
	PurchasedCount int
	AccountID      int64
}

// EventPatch is a partial event update; nil fields are left untouched.
type EventPatch struct {
	Name           *string
	Place          *string
	City           *string
	Description    *string
	EventType      *string
	Status         *string
	StartsAt       *time.Time
	EndsAt         *time.Time
	Price          *float64
	SeatsTotal     *int
	PurchasedCount *int
}

// SoonEvent is a participated event starting within the reminder window.
type SoonEvent struct {
	Event Event
	Until time.Duration
}
