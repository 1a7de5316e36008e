package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/calgrid/calgrid/config"
	"github.com/calgrid/calgrid/internal/bucket"
	"github.com/calgrid/calgrid/internal/collection"
	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/layout"
	"github.com/calgrid/calgrid/internal/navigate"
	"github.com/calgrid/calgrid/internal/storage"
)

// ViewService owns a consistent snapshot of the event list and computes
// view payloads from it. The snapshot is two-layered: the committed list
// mirrors the store, and a queue of pending optimistic actions is
// replayed over it for every read. A computation pass never observes a
// partially-applied mutation.
type ViewService struct {
	store *storage.Storage
	cfg   *config.Config
	log   *logrus.Entry

	mu        sync.Mutex
	committed []domain.Event
	pending   []pendingAction
	nextSeq   int64
}

type pendingAction struct {
	seq int64
	act collection.Action
}

func NewViewService(store *storage.Storage, cfg *config.Config, log *logrus.Entry) *ViewService {
	return &ViewService{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Refresh reloads the committed snapshot from the store.
func (s *ViewService) Refresh() error {
	stored, err := s.store.ListAllEvents()
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	events := make([]domain.Event, 0, len(stored))
	for _, ev := range stored {
		events = append(events, *ev)
	}
	sorted := collection.SortByStart(events, s.cfg.Location)

	s.mu.Lock()
	s.committed = sorted
	s.mu.Unlock()

	s.log.WithField("events", len(sorted)).Debug("snapshot refreshed")
	return nil
}

// Snapshot returns the visible event list: committed base plus pending
// actions, replayed in order.
func (s *ViewService) Snapshot() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return collection.Replay(s.committed, s.pendingActions(), s.cfg.Location)
}

// pendingActions flattens the queue; callers hold s.mu.
func (s *ViewService) pendingActions() []collection.Action {
	acts := make([]collection.Action, len(s.pending))
	for i, p := range s.pending {
		acts[i] = p.act
	}
	return acts
}

// MonthView classifies every visible day of the month grid.
type MonthView struct {
	Anchor   time.Time
	Title    navigate.Title
	Days     []time.Time
	Buckets  map[string]bucket.DayBuckets
	Rejected []collection.Rejected
}

func (s *ViewService) MonthView(anchor time.Time) (*MonthView, error) {
	anchor = anchor.In(s.cfg.Location)
	title, err := navigate.ViewTitle(anchor, domain.ViewMonth, s.cfg.WeekStartDay(), s.cfg.AgendaDays)
	if err != nil {
		return nil, err
	}

	items, rejected := s.normalized()
	days := navigate.MonthGrid(anchor, s.cfg.WeekStartDay())

	return &MonthView{
		Anchor:   anchor,
		Title:    title,
		Days:     days,
		Buckets:  bucket.Month(items, days),
		Rejected: rejected,
	}, nil
}

// WeekView splits the week into a header strip and positioned day
// columns.
type WeekView struct {
	Anchor     time.Time
	Title      navigate.Title
	Days       []time.Time
	Header     []bucket.Segment
	Positioned [][]layout.Positioned
	Rejected   []collection.Rejected
}

func (s *ViewService) WeekView(anchor time.Time) (*WeekView, error) {
	anchor = anchor.In(s.cfg.Location)
	title, err := navigate.ViewTitle(anchor, domain.ViewWeek, s.cfg.WeekStartDay(), s.cfg.AgendaDays)
	if err != nil {
		return nil, err
	}

	items, rejected := s.normalized()
	days := navigate.WeekDays(anchor, s.cfg.WeekStartDay(), s.cfg.ShowWeekends)
	buckets := bucket.Week(items, days)

	return &WeekView{
		Anchor:     anchor,
		Title:      title,
		Days:       days,
		Header:     buckets.Header,
		Positioned: layout.Week(buckets.Days, days, s.layoutConfig()),
		Rejected:   rejected,
	}, nil
}

// DayView is a single positioned day column plus its header events.
type DayView struct {
	Anchor     time.Time
	Title      navigate.Title
	AllDay     []bucket.Segment
	Spanning   []bucket.Segment
	Positioned []layout.Positioned
	Rejected   []collection.Rejected
}

func (s *ViewService) DayView(anchor time.Time) (*DayView, error) {
	anchor = anchor.In(s.cfg.Location)
	title, err := navigate.ViewTitle(anchor, domain.ViewDay, s.cfg.WeekStartDay(), s.cfg.AgendaDays)
	if err != nil {
		return nil, err
	}

	items, rejected := s.normalized()
	buckets := bucket.Classify(items, anchor)

	timed := make([]collection.Item, 0, len(buckets.Day))
	for _, seg := range buckets.Day {
		timed = append(timed, seg.Item)
	}

	return &DayView{
		Anchor:     anchor,
		Title:      title,
		AllDay:     buckets.AllDay,
		Spanning:   buckets.Spanning,
		Positioned: layout.Day(timed, anchor, s.layoutConfig()),
		Rejected:   rejected,
	}, nil
}

// AgendaView is an ordered list of per-day groups over the agenda
// window.
type AgendaView struct {
	Anchor   time.Time
	Title    navigate.Title
	Days     []AgendaDay
	Rejected []collection.Rejected
}

type AgendaDay struct {
	Day    time.Time
	Events []bucket.Segment
}

func (s *ViewService) AgendaView(anchor time.Time) (*AgendaView, error) {
	anchor = anchor.In(s.cfg.Location)
	title, err := navigate.ViewTitle(anchor, domain.ViewAgenda, s.cfg.WeekStartDay(), s.cfg.AgendaDays)
	if err != nil {
		return nil, err
	}

	items, rejected := s.normalized()
	days := navigate.AgendaDays(anchor, s.cfg.AgendaDays)

	out := make([]AgendaDay, 0, len(days))
	for _, day := range days {
		buckets := bucket.Classify(items, day)
		out = append(out, AgendaDay{Day: day, Events: buckets.All})
	}

	return &AgendaView{Anchor: anchor, Title: title, Days: out, Rejected: rejected}, nil
}

// normalized produces the working copies for one computation pass.
// Rejected events are logged once per pass and omitted from the views;
// a malformed event must not take the rest of the calendar down with it.
func (s *ViewService) normalized() ([]collection.Item, []collection.Rejected) {
	items, rejected := collection.Normalize(s.Snapshot(), s.cfg.Location)
	for _, r := range rejected {
		s.log.WithFields(logrus.Fields{"event": r.ID, "reason": r.Reason}).Warn("dropped malformed event")
	}
	return items, rejected
}

func (s *ViewService) layoutConfig() layout.Config {
	return layout.Config{
		DayStartHour:   s.cfg.DayStartHour,
		DayEndHour:     s.cfg.DayEndHour,
		CellHeight:     float64(s.cfg.CellHeight),
		MinEventHeight: float64(s.cfg.MinEventHeight),
	}
}
