package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"afisha/internal/domain/entities"
)

const (
	productID       = "-//afisha//RU"
	defaultDuration = 2 * time.Hour
	uidDomain       = "afisha"
)

// Export writes events as one VCALENDAR. Events without a start time are skipped.
func Export(w io.Writer, events []entities.Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for i := range events {
		if events[i].StartsAt.IsZero() {
			continue
		}
		cal.Children = append(cal.Children, toVEvent(&events[i], stamp))
	}
	if len(cal.Children) == 0 {
		// go-ical refuses a calendar without components.
		return fmt.Errorf("export calendar: no dated event")
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func toVEvent(e *entities.Event, stamp time.Time) *ical.Component {
	end := e.EndsAt
	if end.IsZero() || !end.After(e.StartsAt) {
		end = e.StartsAt.Add(defaultDuration)
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("event-%d@%s", e.ID, uidDomain))
	ve.Props.SetText(ical.PropSummary, e.Name)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, e.StartsAt.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())

	if e.Description != "" {
		ve.Props.SetText(ical.PropDescription, e.Description)
	}
	if location := strings.Trim(e.Place+", "+e.City, ", "); location != "" {
		ve.Props.SetText(ical.PropLocation, location)
	}
	if e.LongURL != "" {
		ve.Props.SetText(ical.PropURL, e.LongURL)
	}
	return ve
}
