package tz

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{"02.01.2006", "02/01/2006", "2006-01-02"}

// ParseDate parses a calendar date (JJ.MM.AAAA, JJ/MM/AAAA or AAAA-MM-JJ) at midnight in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, dateStr, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date invalide (attendu JJ.MM.AAAA, ex: 15.02.2025): %q", dateStr)
}

// ParseDateTime parses a date and an HH:MM time in loc.
func ParseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" || timeStr == "" {
		return time.Time{}, fmt.Errorf("date et heure requises (JJ.MM.AAAA et HH:MM)")
	}
	day, err := ParseDate(dateStr, loc)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("heure invalide (attendu HH:MM, ex: 14:00): %q", timeStr)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// FormatDateTime renders t in loc, "—" for the zero time.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "—"
	}
	return t.In(loc).Format("02.01.2006 15:04")
}

// SplitDuration returns whole hours and remaining minutes of d, floored at zero.
func SplitDuration(d time.Duration) (hours, minutes int) {
	if d < 0 {
		return 0, 0
	}
	total := int(d / time.Minute)
	return total / 60, total % 60
}
