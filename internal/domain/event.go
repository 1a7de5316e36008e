package domain

import (
	"fmt"
	"time"

	"github.com/calgrid/calgrid/internal/temporal"
)

// Event is the unified calendar event model that every provider's raw
// representation is normalized into. Provider, AccountID and CalendarID
// identify where the event came from; the engine treats them as opaque.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string

	Start temporal.Boundary
	End   temporal.Boundary

	AllDay   bool
	ReadOnly bool

	Provider   string
	AccountID  string
	CalendarID string

	// Opaque metadata carried through for the rendering layer.
	Conference string
	Attendees  []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the event invariants: a non-empty id, start not after
// end, and calendar-date boundaries on both ends of an all-day event.
// The reference zone anchors calendar-date boundaries for the comparison.
func (e *Event) Validate(ref *time.Location) error {
	if e.ID == "" {
		return fmt.Errorf("event: missing id")
	}
	if e.AllDay {
		if e.Start.Kind() != temporal.KindDate || e.End.Kind() != temporal.KindDate {
			return fmt.Errorf("event %s: all-day events must carry calendar-date boundaries", e.ID)
		}
	}
	if temporal.Compare(e.Start, e.End, ref) > 0 {
		return fmt.Errorf("event %s: end before start", e.ID)
	}
	return nil
}

// IsMultiDay reports whether the event occupies more than one civil date
// in the given display zone: always true for all-day events, otherwise
// true when start and end project onto different dates.
func (e *Event) IsMultiDay(loc *time.Location) bool {
	if e.AllDay {
		return true
	}
	return temporal.SpansDays(e.Start, e.End, loc)
}

// FormatTimeRange returns the event's displayed time span in loc,
// for list-style views.
func (e *Event) FormatTimeRange(loc *time.Location) string {
	if e.AllDay {
		return "all day"
	}
	start := e.Start.In(loc)
	end := e.End.In(loc)
	if end.Equal(start) {
		return start.Format("15:04")
	}
	return start.Format("15:04") + "-" + end.Format("15:04")
}
