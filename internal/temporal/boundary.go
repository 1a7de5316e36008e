package temporal

import (
	"fmt"
	"time"
)

// Kind discriminates the three representable boundary values.
type Kind int

const (
	// KindDate is a civil date with no time-of-day or zone.
	// Used for all-day events.
	KindDate Kind = iota
	// KindInstant is an absolute point on the UTC timeline with no
	// attached zone. Used when the source gave no zone information.
	KindInstant
	// KindZoned is a civil date+time paired with an IANA time zone.
	// Used for normal timed events.
	KindZoned
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindInstant:
		return "instant"
	case KindZoned:
		return "zoned"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a stored kind string back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "date":
		return KindDate, nil
	case "instant":
		return KindInstant, nil
	case "zoned":
		return KindZoned, nil
	default:
		return 0, &ParseError{Input: s, Reason: "unknown boundary kind"}
	}
}

// Boundary is one endpoint (start or end) of an event. The zero value is
// a KindDate boundary at the zero civil date; callers should construct
// boundaries through the New*/Parse* functions.
type Boundary struct {
	kind Kind

	// t holds the value for every kind:
	//   KindDate:    midnight UTC of the civil date (only Y/M/D meaningful)
	//   KindInstant: the instant, normalized to UTC
	//   KindZoned:   the wall-clock time, carried in loc
	t   time.Time
	loc *time.Location
}

// NewDate builds a calendar-date boundary.
func NewDate(year int, month time.Month, day int) Boundary {
	return Boundary{kind: KindDate, t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewInstant builds an absolute-instant boundary.
func NewInstant(t time.Time) Boundary {
	return Boundary{kind: KindInstant, t: t.UTC()}
}

// NewZoned builds a zoned wall-clock boundary. A nil location is a caller
// bug; the time's own location is not consulted.
func NewZoned(t time.Time, loc *time.Location) Boundary {
	return Boundary{kind: KindZoned, t: t.In(loc), loc: loc}
}

// Kind reports which variant this boundary holds.
func (b Boundary) Kind() Kind { return b.kind }

// In projects the boundary into loc as a concrete wall-clock time:
//
//   - KindDate converts to local midnight of the civil date in loc
//   - KindInstant converts via standard UTC-offset projection
//   - KindZoned re-projects if its own zone differs; the time-of-day
//     changes accordingly (a genuine wall-clock shift)
func (b Boundary) In(loc *time.Location) time.Time {
	switch b.kind {
	case KindDate:
		y, m, d := b.t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	default:
		return b.t.In(loc)
	}
}

// Instant resolves the boundary to an absolute instant. A KindDate boundary
// needs a reference zone to anchor its midnight; the other kinds ignore ref.
func (b Boundary) Instant(ref *time.Location) time.Time {
	if b.kind == KindDate {
		return b.In(ref)
	}
	return b.t
}

// Zone returns the IANA zone of a KindZoned boundary and nil otherwise.
func (b Boundary) Zone() *time.Location {
	return b.loc
}

// Shift moves the boundary by whole days plus minutes, preserving its kind.
// Calendar-date boundaries move by days only; the minutes component is
// dropped because a civil date has no time-of-day to attach it to.
func (b Boundary) Shift(days, minutes int) Boundary {
	switch b.kind {
	case KindDate:
		y, m, d := b.t.AddDate(0, 0, days).Date()
		return NewDate(y, m, d)
	case KindInstant:
		return NewInstant(b.t.AddDate(0, 0, days).Add(time.Duration(minutes) * time.Minute))
	default:
		return NewZoned(b.t.AddDate(0, 0, days).Add(time.Duration(minutes)*time.Minute), b.loc)
	}
}

// Compare orders two boundaries by instant: -1, 0 or 1. The reference zone
// anchors any CalendarDate side; ties beyond instant equality are left to
// the caller's input order.
func Compare(a, b Boundary, ref *time.Location) int {
	ai := a.Instant(ref)
	bi := b.Instant(ref)
	switch {
	case ai.Before(bi):
		return -1
	case ai.After(bi):
		return 1
	default:
		return 0
	}
}

// SpansDays reports whether start and end, projected into loc, fall on
// different civil dates.
func SpansDays(start, end Boundary, loc *time.Location) bool {
	return !SameDay(start.In(loc), end.In(loc))
}

// SameDay reports whether two times share a civil date. Both arguments are
// expected to already be in the display zone.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns local midnight of t's civil date, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
