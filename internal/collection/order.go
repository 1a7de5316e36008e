package collection

import (
	"sort"
	"time"

	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/temporal"
)

// InsertSorted returns a new list with ev inserted so that ascending
// start order is preserved. The insertion point is after any existing
// events with an equal start, so repeated inserts of equal-start events
// keep their arrival order (stable insert). The reference zone anchors
// calendar-date boundaries for the comparison.
func InsertSorted(list []domain.Event, ev domain.Event, ref *time.Location) []domain.Event {
	idx := sort.Search(len(list), func(i int) bool {
		return temporal.Compare(list[i].Start, ev.Start, ref) > 0
	})

	out := make([]domain.Event, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, ev)
	out = append(out, list[idx:]...)
	return out
}

// Upsert removes any existing event with the same id, then inserts ev in
// start order.
func Upsert(list []domain.Event, ev domain.Event, ref *time.Location) []domain.Event {
	return InsertSorted(Remove(list, ev.ID), ev, ref)
}

// Remove returns a new list without the event carrying id. Removing an
// absent id is a no-op.
func Remove(list []domain.Event, id string) []domain.Event {
	out := make([]domain.Event, 0, len(list))
	for _, ev := range list {
		if ev.ID == id {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// SortByStart returns a new list in ascending start order. The sort is
// stable, so equal-start events keep their input order.
func SortByStart(list []domain.Event, ref *time.Location) []domain.Event {
	out := make([]domain.Event, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return temporal.Compare(out[i].Start, out[j].Start, ref) < 0
	})
	return out
}
