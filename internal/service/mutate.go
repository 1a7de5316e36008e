package service

import (
	"fmt"

	"github.com/calgrid/calgrid/internal/collection"
	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/temporal"
)

// snapStepMinutes is the drag/resize grid.
const snapStepMinutes = 15

// PutEvent applies a create-or-update optimistically, commits it to the
// store, and confirms or rolls back the pending action depending on the
// commit result. The visible snapshot reflects the mutation immediately.
func (s *ViewService) PutEvent(ev domain.Event) error {
	if err := ev.Validate(s.cfg.Location); err != nil {
		return err
	}
	if existing, ok := s.findEvent(ev.ID); ok && existing.ReadOnly {
		return fmt.Errorf("event %s is read-only", ev.ID)
	}

	seq := s.apply(collection.Put(ev))
	if err := s.store.UpsertEvent(&ev); err != nil {
		s.rollback(seq)
		return fmt.Errorf("commit event %s: %w", ev.ID, err)
	}
	s.confirm(seq)
	return nil
}

// DeleteEvent removes an event optimistically and commits the removal.
func (s *ViewService) DeleteEvent(id string) error {
	if existing, ok := s.findEvent(id); ok && existing.ReadOnly {
		return fmt.Errorf("event %s is read-only", id)
	}

	seq := s.apply(collection.Delete(id))
	if err := s.store.DeleteEvent(id); err != nil {
		s.rollback(seq)
		return fmt.Errorf("commit delete %s: %w", id, err)
	}
	s.confirm(seq)
	return nil
}

// MoveEvent shifts an event by whole days plus minutes, as produced by a
// drag gesture. Minutes snap to the 15-minute grid with half-expand
// rounding; all-day events move by days only.
func (s *ViewService) MoveEvent(id string, days, minutes int) (*domain.Event, error) {
	ev, ok := s.findEvent(id)
	if !ok {
		return nil, fmt.Errorf("event %s not found", id)
	}

	minutes = snapMinutes(minutes)
	if ev.AllDay {
		minutes = 0
	}
	ev.Start = ev.Start.Shift(days, minutes)
	ev.End = ev.End.Shift(days, minutes)

	if err := s.PutEvent(ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// ResizeEvent shifts only the end boundary, snapped to the grid. An end
// dragged past the start clamps to the start: the event degrades to a
// single point rather than inverting.
func (s *ViewService) ResizeEvent(id string, days, minutes int) (*domain.Event, error) {
	ev, ok := s.findEvent(id)
	if !ok {
		return nil, fmt.Errorf("event %s not found", id)
	}

	minutes = snapMinutes(minutes)
	if ev.AllDay {
		minutes = 0
	}
	ev.End = ev.End.Shift(days, minutes)
	if temporal.Compare(ev.End, ev.Start, s.cfg.Location) < 0 {
		ev.End = ev.Start
	}

	if err := s.PutEvent(ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// snapMinutes rounds to the nearest grid step, half away from zero.
func snapMinutes(m int) int {
	step := snapStepMinutes
	half := step / 2
	if m >= 0 {
		return (m + half) / step * step
	}
	return -((-m + half) / step * step)
}

// findEvent looks the event up in the visible snapshot.
func (s *ViewService) findEvent(id string) (domain.Event, bool) {
	for _, ev := range s.Snapshot() {
		if ev.ID == id {
			return ev, true
		}
	}
	return domain.Event{}, false
}

// apply appends a pending action and returns its sequence number.
func (s *ViewService) apply(act collection.Action) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.pending = append(s.pending, pendingAction{seq: s.nextSeq, act: act})
	return s.nextSeq
}

// confirm folds a committed action into the base snapshot and drops it
// from the queue.
func (s *ViewService) confirm(seq int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pending {
		if p.seq != seq {
			continue
		}
		switch p.act.Kind {
		case collection.ActionPut:
			s.committed = collection.Upsert(s.committed, p.act.Event, s.cfg.Location)
		case collection.ActionDelete:
			s.committed = collection.Remove(s.committed, p.act.ID)
		}
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		return
	}
}

// rollback drops a failed action from the queue; the next replay makes
// the optimistic change disappear.
func (s *ViewService) rollback(seq int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pending {
		if p.seq == seq {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}
