package entities

import (
	"strings"
	"time"
)

// UserFilter narrows the admin users list. Zero fields match everything.
type UserFilter struct {
	Name   string
	Role   string
	Status string
	From   time.Time // inclusive
	To     time.Time // inclusive
}

// Match reports whether u passes every set criterion.
func (f UserFilter) Match(u User) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(u.DisplayName), strings.ToLower(f.Name)) {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.Status != "" && u.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && u.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && u.CreatedAt.After(f.To) {
		return false
	}
	return true
}

// EventStatusFilter selects events of the admin list by their state.
type EventStatusFilter string

const (
	EventsAll    EventStatusFilter = ""
	EventsActive EventStatusFilter = "active"
	EventsPast   EventStatusFilter = "past"
)

// Match reports whether e belongs to the filter at now.
func (f EventStatusFilter) Match(e Event, now time.Time) bool {
	switch f {
	case EventsActive:
		return !e.IsPast(now)
	case EventsPast:
		return e.IsPast(now)
	default:
		return true
	}
}
