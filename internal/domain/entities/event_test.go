package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"afisha/internal/domain/entities"
)

func TestEvent_IsFull(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		purchased int
		want      bool
	}{
		{name: "no_seat_limit", total: 0, purchased: 50, want: false},
		{name: "seats_left", total: 10, purchased: 9, want: false},
		{name: "exactly_full", total: 10, purchased: 10, want: true},
		{name: "oversold", total: 10, purchased: 12, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entities.Event{SeatsTotal: tt.total, PurchasedCount: tt.purchased}
			assert.Equal(t, tt.want, e.IsFull())
		})
	}
}

func TestEvent_IsPast(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event entities.Event
		want  bool
	}{
		{name: "finished_status", event: entities.Event{Status: "finished", StartsAt: now.Add(time.Hour)}, want: true},
		{name: "end_before_now", event: entities.Event{StartsAt: now.Add(-3 * time.Hour), EndsAt: now.Add(-time.Hour)}, want: true},
		{name: "started_but_not_ended", event: entities.Event{StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)}, want: false},
		{name: "start_before_now_without_end", event: entities.Event{StartsAt: now.Add(-time.Minute)}, want: true},
		{name: "future", event: entities.Event{StartsAt: now.Add(time.Hour)}, want: false},
		{name: "no_dates", event: entities.Event{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.IsPast(now))
		})
	}
}

func TestEvent_HeroImage(t *testing.T) {
	e := entities.Event{MessageLink: "t.me/post", LongURL: "https://example.com/e", ImageURL: "https://cdn/img.png"}
	assert.Equal(t, "https://example.com/e", e.HeroImage())

	e.MessageLink = "http://t.me/post"
	assert.Equal(t, "http://t.me/post", e.HeroImage())

	assert.Empty(t, (&entities.Event{ImageURL: "/local.png"}).HeroImage())
}

func TestEvent_Matches(t *testing.T) {
	e := entities.Event{Name: "Джазовый вечер", Place: "Клуб", City: "Казань", Description: "Живая музыка"}

	assert.True(t, e.Matches(""))
	assert.True(t, e.Matches("джаз"))
	assert.True(t, e.Matches("КАЗАНЬ"))
	assert.False(t, e.Matches("кино"))

	assert.True(t, e.Mentions("музыка"))
	assert.False(t, e.Mentions("Казань"), "mentions only looks at name and description")
	assert.False(t, e.Mentions(" "))
}
