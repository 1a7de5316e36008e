// Package layout assigns pixel geometry to timed events for week/day
// views. Vertical placement comes from time-of-day in the display zone;
// horizontal placement comes from first-fit column assignment over
// interval overlap, so concurrent events render side by side. The
// functions here are referentially transparent: the surrounding UI layer
// memoizes on input identity, so equal inputs must yield equal output.
package layout

import (
	"sort"
	"time"

	"github.com/calgrid/calgrid/internal/collection"
	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/temporal"
)

// Config is the view geometry: which hours are visible and how tall an
// hour cell is, in pixels.
type Config struct {
	// DayStartHour and DayEndHour bound the visible hours [start, end).
	DayStartHour int
	DayEndHour   int
	// CellHeight is pixels per hour.
	CellHeight float64
	// MinEventHeight keeps very short events clickable.
	MinEventHeight float64
}

// DefaultConfig matches a full-day grid with 48px hour cells.
func DefaultConfig() Config {
	return Config{DayStartHour: 0, DayEndHour: 24, CellHeight: 48, MinEventHeight: 12}
}

// Positioned is one timed event's geometry on one day column. Left and
// Width are fractions of the column width in [0,1]; Top and Height are
// pixels.
type Positioned struct {
	Event  domain.Event
	Top    float64
	Height float64
	Left   float64
	Width  float64
	ZIndex int
}

// Day lays out one day column. Events are expected to be the day's
// single-day timed events; no input means an empty column.
func Day(items []collection.Item, day time.Time, cfg Config) []Positioned {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]collection.Item, len(items))
	copy(sorted, items)
	// Start ascending; ties go to the longer event so a cluster's anchor
	// takes column 0; equal-duration ties fall back to event id to keep
	// layouts reproducible.
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		da, db := a.Duration(), b.Duration()
		if da != db {
			return da > db
		}
		return a.Event.ID < b.Event.ID
	})

	out := make([]Positioned, 0, len(sorted))

	// One cluster at a time: events that transitively overlap share a
	// column count for width computation.
	var (
		cluster  []clusterEntry
		colEnds  []time.Time // exclusive end of the last event per column
		maxEnd   time.Time
		dayStart = temporal.StartOfDay(day)
	)

	flush := func() {
		cols := len(colEnds)
		for _, entry := range cluster {
			p := position(entry.item, dayStart, cfg)
			if cols > 1 {
				p.Width = 1 / float64(cols)
				p.Left = float64(entry.col) / float64(cols)
			}
			p.ZIndex = entry.col + 1
			out = append(out, p)
		}
		cluster = cluster[:0]
		colEnds = colEnds[:0]
	}

	for _, it := range sorted {
		start := it.Start
		end := it.End.Add(time.Second) // working copies carry an inclusive end

		// A start at or past every open end closes the cluster.
		if len(cluster) > 0 && !start.Before(maxEnd) {
			flush()
		}

		// First column whose last event has already ended is reused.
		col := -1
		for c := range colEnds {
			if !colEnds[c].After(start) {
				col = c
				break
			}
		}
		if col == -1 {
			col = len(colEnds)
			colEnds = append(colEnds, end)
		} else {
			colEnds[col] = end
		}

		cluster = append(cluster, clusterEntry{item: it, col: col})
		if end.After(maxEnd) {
			maxEnd = end
		}
	}
	flush()

	return out
}

// Week lays out every visible day column. dayItems[i] holds the timed
// events of days[i], as produced by the week classifier.
func Week(dayItems [][]collection.Item, days []time.Time, cfg Config) [][]Positioned {
	out := make([][]Positioned, len(days))
	for i, day := range days {
		out[i] = Day(dayItems[i], day, cfg)
	}
	return out
}

type clusterEntry struct {
	item collection.Item
	col  int
}

// position computes the vertical geometry for one event. Height uses the
// instant-based duration, not wall-clock subtraction, so events crossing
// a DST transition keep their real elapsed height.
func position(it collection.Item, dayStart time.Time, cfg Config) Positioned {
	visibleTop := float64(cfg.DayStartHour) * 60
	visibleBottom := float64(cfg.DayEndHour) * 60

	startMin := float64(it.Start.Hour()*60 + it.Start.Minute())
	durMin := it.Duration().Minutes()

	// Clip to the visible hour range.
	if startMin < visibleTop {
		durMin -= visibleTop - startMin
		startMin = visibleTop
	}
	if startMin+durMin > visibleBottom {
		durMin = visibleBottom - startMin
	}
	if durMin < 0 {
		durMin = 0
	}

	top := (startMin - visibleTop) / 60 * cfg.CellHeight
	height := durMin / 60 * cfg.CellHeight
	if height < cfg.MinEventHeight {
		height = cfg.MinEventHeight
	}

	return Positioned{Event: it.Event, Top: top, Height: height, Left: 0, Width: 1}
}
