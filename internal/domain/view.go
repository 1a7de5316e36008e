package domain

import "fmt"

// View identifies a calendar view.
type View string

const (
	ViewMonth  View = "month"
	ViewWeek   View = "week"
	ViewDay    View = "day"
	ViewAgenda View = "agenda"
)

// ParseView validates a view string. Unknown values are an error: the
// navigation layer must fail loudly rather than silently behave like a
// week view.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewMonth, ViewWeek, ViewDay, ViewAgenda:
		return View(s), nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}
