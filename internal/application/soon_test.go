package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afisha/internal/domain/entities"
)

func TestSoonEvents_24HourWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []entities.Event{
		{ID: 3, StartsAt: now.Add(30 * time.Hour)},
		{ID: 2, StartsAt: now.Add(23 * time.Hour)},
		{ID: 1, StartsAt: now.Add(time.Hour)},
	}

	soon := SoonEvents(events, now)

	require.Len(t, soon, 2)
	assert.Equal(t, int64(1), soon[0].Event.ID)
	assert.Equal(t, time.Hour, soon[0].Until)
	assert.Equal(t, int64(2), soon[1].Event.ID)
}

func TestSoonEvents_Boundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []entities.Event{
		{ID: 1, StartsAt: now},
		{ID: 2, StartsAt: now.Add(SoonWindow)},
		{ID: 3, StartsAt: now.Add(SoonWindow + time.Second)},
		{ID: 4, StartsAt: now.Add(-time.Minute)},
		{ID: 5},
	}

	soon := SoonEvents(events, now)

	require.Len(t, soon, 1)
	assert.Equal(t, int64(2), soon[0].Event.ID)
}
