// Package ical renders the aggregated event list as an iCalendar feed,
// so the local mirror can be subscribed to from other clients.
package ical

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/calgrid/calgrid/internal/domain"
)

const productID = "-//calgrid//calendar//EN"

// Export converts events into a single VCALENDAR. All-day events are
// emitted as DATE values; timed events as UTC instants.
func Export(events []domain.Event, loc *time.Location) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	now := time.Now().UTC()
	for i := range events {
		cal.Children = append(cal.Children, eventComponent(&events[i], loc, now))
	}
	return cal
}

func eventComponent(ev *domain.Event, loc *time.Location, stamp time.Time) *ical.Component {
	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, ev.ID)
	vevent.Props.SetText(ical.PropSummary, ev.Title)

	if ev.Description != "" {
		vevent.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Location != "" {
		vevent.Props.SetText(ical.PropLocation, ev.Location)
	}

	if ev.AllDay {
		vevent.Props.SetDate(ical.PropDateTimeStart, ev.Start.In(loc))
		vevent.Props.SetDate(ical.PropDateTimeEnd, ev.End.In(loc))
	} else {
		vevent.Props.SetDateTime(ical.PropDateTimeStart, ev.Start.Instant(loc).UTC())
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, ev.End.Instant(loc).UTC())
	}

	vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	return vevent.Component
}

// Serialize encodes the calendar to its wire form.
func Serialize(cal *ical.Calendar) (string, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encode calendar: %w", err)
	}
	return buf.String(), nil
}
