// Package navigate holds the pure date arithmetic behind moving a view
// anchor date and producing the visible-day grids. All functions are
// total over valid (date, view) inputs; unknown views are a hard error.
package navigate

import (
	"errors"
	"fmt"
	"time"

	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/temporal"
)

// ErrUnknownView is returned for view values outside the four known
// views. Callers must not be handed silent week-like behavior instead.
var ErrUnknownView = errors.New("navigate: unknown view")

// Direction moves the anchor date backward or forward.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Step returns the next anchor date for the view. Month steps preserve
// the day-of-month where valid and clamp to the target month's last day
// otherwise (Jan 31 forward is Feb 29/28, never Mar 2); week steps are
// seven days, day steps one, agenda steps agendaDays.
func Step(date time.Time, view domain.View, dir Direction, agendaDays int) (time.Time, error) {
	switch view {
	case domain.ViewMonth:
		return AddMonths(date, int(dir)), nil
	case domain.ViewWeek:
		return date.AddDate(0, 0, 7*int(dir)), nil
	case domain.ViewDay:
		return date.AddDate(0, 0, int(dir)), nil
	case domain.ViewAgenda:
		if agendaDays <= 0 {
			agendaDays = DefaultAgendaDays
		}
		return date.AddDate(0, 0, agendaDays*int(dir)), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}

// DefaultAgendaDays is the agenda window used when no size is configured.
const DefaultAgendaDays = 7

// AddMonths shifts the date by n calendar months, clamping the
// day-of-month to the target month's length instead of letting the
// overflow spill into the following month.
func AddMonths(date time.Time, n int) time.Time {
	y, m, d := date.Date()
	first := time.Date(y, m+time.Month(n), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfWeek returns midnight of the week containing date, where weeks
// begin on weekStart.
func StartOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	day := temporal.StartOfDay(date)
	diff := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// WeekDays returns the week's visible days in order. With showWeekends
// false, Saturday and Sunday are dropped.
func WeekDays(date time.Time, weekStart time.Weekday, showWeekends bool) []time.Time {
	start := StartOfWeek(date, weekStart)
	days := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		if !showWeekends && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		days = append(days, d)
	}
	return days
}

// AgendaDays returns the agenda window's days starting at date.
func AgendaDays(date time.Time, agendaDays int) []time.Time {
	if agendaDays <= 0 {
		agendaDays = DefaultAgendaDays
	}
	start := temporal.StartOfDay(date)
	days := make([]time.Time, 0, agendaDays)
	for i := 0; i < agendaDays; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// MonthGrid returns the month view's visible days: whole weeks from the
// week containing the first of the month through the week containing its
// last day (up to six rows of seven).
func MonthGrid(date time.Time, weekStart time.Weekday) []time.Time {
	y, m, _ := date.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, date.Location())
	last := time.Date(y, m, daysIn(y, m), 0, 0, 0, 0, date.Location())

	gridStart := StartOfWeek(first, weekStart)
	gridEnd := StartOfWeek(last, weekStart).AddDate(0, 0, 7)

	var days []time.Time
	for d := gridStart; d.Before(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
