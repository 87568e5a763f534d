package calendar

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afisha/internal/domain/entities"
)

func TestExport(t *testing.T) {
	stamp := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)
	events := []entities.Event{
		{ID: 7, Name: "Jazz night", Place: "Club", City: "Москва", StartsAt: start, LongURL: "https://afisha.example/7"},
		{ID: 8, Name: "No date"},
		{ID: 9, Name: "Lecture", StartsAt: start, EndsAt: start.Add(90 * time.Minute)},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, events, stamp))

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)
	vevents := cal.Events()
	require.Len(t, vevents, 2)

	uid, err := vevents[0].Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "event-7@afisha", uid)
	location, err := vevents[0].Props.Text(ical.PropLocation)
	require.NoError(t, err)
	assert.Equal(t, "Club, Москва", location)

	end, err := vevents[0].DateTimeEnd(time.UTC)
	require.NoError(t, err)
	assert.True(t, end.Equal(start.Add(2*time.Hour)))

	end, err = vevents[1].DateTimeEnd(time.UTC)
	require.NoError(t, err)
	assert.True(t, end.Equal(start.Add(90*time.Minute)))
}

func TestExport_NoDatedEvent(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, []entities.Event{{ID: 1}}, time.Now())
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
