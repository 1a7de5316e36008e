package collection

import (
	"time"

	"github.com/calgrid/calgrid/internal/domain"
)

// ActionKind discriminates optimistic mutations.
type ActionKind int

const (
	// ActionPut inserts or replaces an event (create and update share it:
	// the commit path is idempotent per id either way).
	ActionPut ActionKind = iota
	// ActionDelete removes an event by id.
	ActionDelete
)

// Action is one not-yet-confirmed mutation. The visible snapshot is
// always derived by replaying the pending queue over the committed base,
// so rolling an action back is just dropping it from the queue.
type Action struct {
	Kind  ActionKind
	Event domain.Event
	ID    string
}

// Put builds a pending insert-or-replace action.
func Put(ev domain.Event) Action {
	return Action{Kind: ActionPut, Event: ev, ID: ev.ID}
}

// Delete builds a pending delete action.
func Delete(id string) Action {
	return Action{Kind: ActionDelete, ID: id}
}

// Replay derives the visible snapshot from the committed base plus the
// pending queue, applying actions in order (last applied wins). The
// committed list is not modified; committed must already be sorted by
// start.
func Replay(committed []domain.Event, pending []Action, ref *time.Location) []domain.Event {
	out := make([]domain.Event, len(committed))
	copy(out, committed)

	for _, act := range pending {
		switch act.Kind {
		case ActionPut:
			out = Upsert(out, act.Event, ref)
		case ActionDelete:
			out = Remove(out, act.ID)
		}
	}
	return out
}
