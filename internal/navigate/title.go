package navigate

import (
	"fmt"
	"time"

	"github.com/calgrid/calgrid/internal/domain"
)

// Title is a view heading in two widths, for responsive display.
type Title struct {
	Full  string
	Short string
}

// ViewTitle renders the heading for the view anchored at date. Week and
// agenda titles collapse to a single "Month Year" when the window stays
// inside one month and spell out both months otherwise.
func ViewTitle(date time.Time, view domain.View, weekStart time.Weekday, agendaDays int) (Title, error) {
	switch view {
	case domain.ViewMonth:
		return Title{
			Full:  date.Format("January 2006"),
			Short: date.Format("Jan 2006"),
		}, nil
	case domain.ViewWeek:
		start := StartOfWeek(date, weekStart)
		return rangeTitle(start, start.AddDate(0, 0, 6)), nil
	case domain.ViewDay:
		return Title{
			Full:  date.Format("Monday, January 2, 2006"),
			Short: date.Format("Mon, Jan 2"),
		}, nil
	case domain.ViewAgenda:
		if agendaDays <= 0 {
			agendaDays = DefaultAgendaDays
		}
		return rangeTitle(date, date.AddDate(0, 0, agendaDays-1)), nil
	default:
		return Title{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}

func rangeTitle(first, last time.Time) Title {
	switch {
	case first.Month() == last.Month() && first.Year() == last.Year():
		return Title{
			Full:  first.Format("January 2006"),
			Short: first.Format("Jan 2006"),
		}
	case first.Year() == last.Year():
		return Title{
			Full:  first.Format("Jan") + " - " + last.Format("Jan 2006"),
			Short: first.Format("Jan") + " - " + last.Format("Jan"),
		}
	default:
		return Title{
			Full:  first.Format("Jan 2006") + " - " + last.Format("Jan 2006"),
			Short: first.Format("Jan '06") + " - " + last.Format("Jan '06"),
		}
	}
}
