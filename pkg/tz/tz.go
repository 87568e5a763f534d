package tz

import (
	"strings"
	"time"
	_ "time/tzdata" // embedded zone database for hosts without one
)

// Moscow is the Europe/Moscow location, the default afisha timezone.
var Moscow *time.Location

func init() {
	var err error
	Moscow, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic("tz: load Europe/Moscow: " + err.Error())
	}
}

// Load resolves a location name. An empty name yields Moscow.
func Load(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Moscow, nil
	}
	return time.LoadLocation(name)
}

// StartOfDay returns midnight of t's day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
