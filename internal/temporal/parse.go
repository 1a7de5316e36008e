package temporal

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	wallLayout = "2006-01-02T15:04:05"
)

// ParseError reports a boundary value that cannot be normalized: a
// malformed date-time string or an unrecognized zone identifier. This
// layer never guesses a fallback; an event with an unparseable boundary
// must be surfaced to the caller, not displayed at a wrong time.
type ParseError struct {
	Input  string
	Zone   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse boundary %q", e.Input)
	if e.Zone != "" {
		msg += fmt.Sprintf(" (zone %q)", e.Zone)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseDate parses a civil date in 2006-01-02 form.
func ParseDate(s string) (Boundary, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Boundary{}, &ParseError{Input: s, Reason: "invalid calendar date", Err: err}
	}
	return NewDate(t.Date()), nil
}

// ParseInstant parses an RFC 3339 timestamp into an instant boundary.
func ParseInstant(s string) (Boundary, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Boundary{}, &ParseError{Input: s, Reason: "invalid instant", Err: err}
	}
	return NewInstant(t), nil
}

// ParseZoned parses a zone-less wall-clock value (2006-01-02T15:04:05) in
// the named IANA zone.
func ParseZoned(value, zone string) (Boundary, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Boundary{}, &ParseError{Input: value, Zone: zone, Reason: "unknown time zone", Err: err}
	}
	t, err := time.ParseInLocation(wallLayout, value, loc)
	if err != nil {
		return Boundary{}, &ParseError{Input: value, Zone: zone, Reason: "invalid date-time", Err: err}
	}
	return NewZoned(t, loc), nil
}

// Parts serializes a boundary into the (kind, value, zone) triple used by
// the sqlite store and the HTTP API. FromParts reverses it.
func (b Boundary) Parts() (kind, value, zone string) {
	switch b.kind {
	case KindDate:
		return b.kind.String(), b.t.Format(dateLayout), ""
	case KindInstant:
		return b.kind.String(), b.t.Format(time.RFC3339), ""
	default:
		return b.kind.String(), b.t.Format(wallLayout), b.loc.String()
	}
}

// FromParts rebuilds a boundary from its stored triple.
func FromParts(kind, value, zone string) (Boundary, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Boundary{}, err
	}
	switch k {
	case KindDate:
		return ParseDate(value)
	case KindInstant:
		return ParseInstant(value)
	default:
		return ParseZoned(value, zone)
	}
}
