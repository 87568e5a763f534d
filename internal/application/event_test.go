package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afisha/internal/domain/entities"
)

func TestEventService_ParticipatedEventsSettlesEachItem(t *testing.T) {
	f := newParticipationFixture(
		entities.Event{ID: 1, Name: "one"},
		entities.Event{ID: 2, Name: "two"},
		entities.Event{ID: 3, Name: "three"},
	)
	f.api.failIDs[2] = true
	m := entities.ParticipationMap{"3": {Email: "a"}, "1": {Email: "a"}, "2": {Email: "a"}, "junk": {Email: "a"}}

	events := f.events.ParticipatedEvents(context.Background(), m)

	require.Len(t, events, 2)
	assert.Equal(t, int64(1), events[0].ID)
	assert.Equal(t, int64(3), events[1].ID)
	assert.Equal(t, 3, f.api.getCalls, "invalid keys are not fetched")
}

func TestEventService_ParticipatedEventsEmpty(t *testing.T) {
	f := newParticipationFixture()
	assert.Empty(t, f.events.ParticipatedEvents(context.Background(), entities.ParticipationMap{}))
	assert.Equal(t, 0, f.api.getCalls)
}

func TestEventService_UpcomingStartsAtMidnight(t *testing.T) {
	f := newParticipationFixture()
	f.now = time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	f.api.between = []entities.Event{
		{ID: 1, StartsAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 2, StartsAt: time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC)},
		{ID: 3, StartsAt: time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)},
		{ID: 4, StartsAt: time.Date(2025, 5, 31, 23, 0, 0, 0, time.UTC)},
	}

	events, err := f.events.Upcoming(context.Background(), 7)
	require.NoError(t, err)

	ids := make([]int64, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestEventService_Search(t *testing.T) {
	f := newParticipationFixture()
	f.api.between = []entities.Event{
		{ID: 1, Name: "Рок-концерт", StartsAt: f.now.Add(time.Hour)},
		{ID: 2, Name: "Выставка", City: "Казань", StartsAt: f.now.Add(time.Hour)},
	}

	events, err := f.events.Search(context.Background(), "казань")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(2), events[0].ID)
}

func TestFilters(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []entities.Event{
		{ID: 1, Name: "Кино под открытым небом", City: "Москва", StartsAt: now.Add(time.Hour)},
		{ID: 2, Name: "Концерты недели", City: " москва ", StartsAt: now.Add(-time.Hour)},
		{ID: 3, Name: "Лекция", Description: "Спорт и здоровье", City: "Казань", StartsAt: now.Add(2 * time.Hour)},
	}

	assert.Len(t, FilterByCity(events, ""), 3)
	assert.Len(t, FilterByCity(events, "Москва"), 2)

	byCategory := FilterByCategories(events, []string{"кино", "Спорт"})
	require.Len(t, byCategory, 2)
	assert.Equal(t, int64(1), byCategory[0].ID)
	assert.Equal(t, int64(3), byCategory[1].ID)
	assert.Len(t, FilterByCategories(events, nil), 3)

	active, past := SplitActivePast(events, now)
	assert.Len(t, active, 2)
	require.Len(t, past, 1)
	assert.Equal(t, int64(2), past[0].ID)
}
