package tz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	loc, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Moscow, loc)

	loc, err = Load(" Asia/Yekaterinburg ")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Yekaterinburg", loc.String())

	_, err = Load("Nowhere/City")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("15.02.2025", "14:30", Moscow)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 2, 15, 11, 30, 0, 0, time.UTC)))

	got, err = ParseDate("2025-02-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Day())

	_, err = ParseDateTime("15.02.2025", "", Moscow)
	assert.Error(t, err)
	_, err = ParseDateTime("31.02.2025", "10:00", Moscow)
	assert.Error(t, err)
	_, err = ParseDateTime("15.02.2025", "25:00", Moscow)
	assert.Error(t, err)
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "—", FormatDateTime(time.Time{}, Moscow))
	assert.Equal(t, "15.02.2025 14:30", FormatDateTime(time.Date(2025, 2, 15, 11, 30, 0, 0, time.UTC), Moscow))
}

func TestStartOfDay(t *testing.T) {
	// 22:30 UTC is already the next day in Moscow
	got := StartOfDay(time.Date(2025, 2, 15, 22, 30, 0, 0, time.UTC), Moscow)
	assert.Equal(t, 16, got.Day())
	assert.Equal(t, 0, got.Hour())
}

func TestSplitDuration(t *testing.T) {
	h, m := SplitDuration(2*time.Hour + 5*time.Minute + 30*time.Second)
	assert.Equal(t, 2, h)
	assert.Equal(t, 5, m)
	h, m = SplitDuration(-time.Minute)
	assert.Zero(t, h)
	assert.Zero(t, m)
}
