// Package collection builds per-pass working copies of events and keeps
// event lists sorted under optimistic mutation. Everything here is pure:
// functions return new slices and never mutate their inputs, so snapshots
// compose safely with an apply/rollback pattern.
package collection

import (
	"fmt"
	"time"

	"github.com/calgrid/calgrid/internal/domain"
)

// Item is the working copy the classifier and layout engine operate on:
// one event with both boundaries projected into a single display zone.
// End is inclusive (one second before the displayed end) so that an
// event ending at midnight does not leak into the next day's bucket.
// Items are created fresh per computation pass and never mutated.
type Item struct {
	Event domain.Event
	Start time.Time
	End   time.Time
}

// Rejected reports an event dropped during normalization. A malformed
// event is omitted from the pass rather than aborting the whole batch.
type Rejected struct {
	ID     string
	Reason string
}

// Normalize projects events into loc and produces working copies. Events
// whose end precedes their start are rejected with a diagnostic; they
// cannot be classified or laid out meaningfully and must not be "fixed"
// by swapping the boundaries. Zero-duration events survive as single
// points on their start day.
func Normalize(events []domain.Event, loc *time.Location) ([]Item, []Rejected) {
	items := make([]Item, 0, len(events))
	var rejected []Rejected

	for _, ev := range events {
		start := ev.Start.In(loc)
		end := ev.End.In(loc)
		if end.Before(start) {
			rejected = append(rejected, Rejected{
				ID:     ev.ID,
				Reason: fmt.Sprintf("end %s before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339)),
			})
			continue
		}

		// Displayed ends are exclusive; work with the last contained second.
		end = end.Add(-time.Second)
		if end.Before(start) {
			end = start
		}

		items = append(items, Item{Event: ev, Start: start, End: end})
	}

	return items, rejected
}

// Duration returns the item's real elapsed duration. It is instant-based,
// so it stays correct across DST transitions where wall-clock subtraction
// would not be.
func (it Item) Duration() time.Duration {
	return it.End.Add(time.Second).Sub(it.Start)
}
