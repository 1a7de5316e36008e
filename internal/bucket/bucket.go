// Package bucket splits normalized events into the per-day groups a
// calendar view renders: all-day bars, spanning continuations and
// single-day timed events. Classification is a pure function of its
// inputs and is re-run on every pass, so equal inputs must always
// produce equal buckets.
package bucket

import (
	"time"

	"github.com/calgrid/calgrid/internal/collection"
	"github.com/calgrid/calgrid/internal/temporal"
)

// DayKeyLayout formats the map key used by the month grid.
const DayKeyLayout = "2006-01-02"

// Segment is one event's appearance on one day. IsFirstDay and IsLastDay
// tell the renderer whether this day's bar carries the title and where
// the rounded corners go for multi-day events.
type Segment struct {
	Item       collection.Item
	IsFirstDay bool
	IsLastDay  bool
}

// DayBuckets holds one day's classified events.
type DayBuckets struct {
	// AllDay: strict all-day events (calendar-date boundaries) whose
	// span covers this day.
	AllDay []Segment
	// Day: single-day timed events starting on this day. Zero-duration
	// events land here, on their start day only.
	Day []Segment
	// Spanning: timed events crossing midnight whose span touches this
	// day; rendered as truncated/continued bars.
	Spanning []Segment
	// All is the union, for "show more" popovers.
	All []Segment
}

// Classify buckets items for a single day. Items carry an inclusive end
// (one second before the displayed end), so an event ending exactly at
// this day's midnight does not intersect it.
func Classify(items []collection.Item, day time.Time) DayBuckets {
	dayStart := temporal.StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var b DayBuckets
	for _, it := range items {
		multiDay := it.Event.AllDay || !temporal.SameDay(it.Start, it.End)

		if !multiDay {
			if !temporal.SameDay(it.Start, dayStart) {
				continue
			}
			seg := Segment{Item: it, IsFirstDay: true, IsLastDay: true}
			b.Day = append(b.Day, seg)
			b.All = append(b.All, seg)
			continue
		}

		// Multi-day: include when [start, end] touches the day.
		if it.End.Before(dayStart) || !it.Start.Before(dayEnd) {
			continue
		}
		seg := Segment{
			Item:       it,
			IsFirstDay: temporal.SameDay(it.Start, dayStart),
			IsLastDay:  temporal.SameDay(it.End, dayStart),
		}
		if it.Event.AllDay {
			b.AllDay = append(b.AllDay, seg)
		} else {
			b.Spanning = append(b.Spanning, seg)
		}
		b.All = append(b.All, seg)
	}
	return b
}

// Month classifies every visible day of a month grid independently,
// keyed by civil date.
func Month(items []collection.Item, days []time.Time) map[string]DayBuckets {
	out := make(map[string]DayBuckets, len(days))
	for _, day := range days {
		out[day.Format(DayKeyLayout)] = Classify(items, day)
	}
	return out
}

// WeekBuckets is the week view's split: multi-day events render once in
// a header strip, single-day timed events are grouped per day column for
// the layout engine.
type WeekBuckets struct {
	Header []Segment
	Days   [][]collection.Item
}

// Week separates the header strip from the per-day timed lists for the
// given ordered visible days.
func Week(items []collection.Item, days []time.Time) WeekBuckets {
	if len(days) == 0 {
		return WeekBuckets{}
	}
	weekStart := temporal.StartOfDay(days[0])
	weekEnd := temporal.StartOfDay(days[len(days)-1]).AddDate(0, 0, 1)

	out := WeekBuckets{Days: make([][]collection.Item, len(days))}
	for _, it := range items {
		if it.Event.AllDay || !temporal.SameDay(it.Start, it.End) {
			if it.End.Before(weekStart) || !it.Start.Before(weekEnd) {
				continue
			}
			out.Header = append(out.Header, Segment{
				Item:       it,
				IsFirstDay: !it.Start.Before(weekStart),
				IsLastDay:  it.End.Before(weekEnd),
			})
			continue
		}
		for i, day := range days {
			if temporal.SameDay(it.Start, day) {
				out.Days[i] = append(out.Days[i], it)
				break
			}
		}
	}
	return out
}
