package server

import (
	"fmt"
	"time"

	"github.com/calgrid/calgrid/internal/bucket"
	"github.com/calgrid/calgrid/internal/collection"
	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/layout"
	"github.com/calgrid/calgrid/internal/navigate"
	"github.com/calgrid/calgrid/internal/service"
	"github.com/calgrid/calgrid/internal/temporal"
)

// BoundaryDTO is the wire form of an event boundary: its kind plus the
// kind-specific value and zone.
type BoundaryDTO struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Zone  string `json:"zone,omitempty"`
}

type EventDTO struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	Start       BoundaryDTO `json:"start"`
	End         BoundaryDTO `json:"end"`
	AllDay      bool        `json:"all_day"`
	ReadOnly    bool        `json:"read_only"`
	Provider    string      `json:"provider,omitempty"`
	AccountID   string      `json:"account_id,omitempty"`
	CalendarID  string      `json:"calendar_id,omitempty"`
	Conference  string      `json:"conference,omitempty"`
	Attendees   []string    `json:"attendees,omitempty"`
}

type SegmentDTO struct {
	Event      EventDTO `json:"event"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	IsFirstDay bool     `json:"is_first_day"`
	IsLastDay  bool     `json:"is_last_day"`
}

type PositionedDTO struct {
	Event  EventDTO `json:"event"`
	Top    float64  `json:"top"`
	Height float64  `json:"height"`
	Left   float64  `json:"left"`
	Width  float64  `json:"width"`
	ZIndex int      `json:"z_index"`
}

type TitleDTO struct {
	Full  string `json:"full"`
	Short string `json:"short"`
}

type RejectedDTO struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type MonthViewDTO struct {
	Anchor   string                  `json:"anchor"`
	Title    TitleDTO                `json:"title"`
	Days     []string                `json:"days"`
	Buckets  map[string]DayBucketDTO `json:"buckets"`
	Rejected []RejectedDTO           `json:"rejected,omitempty"`
}

type DayBucketDTO struct {
	AllDay   []SegmentDTO `json:"all_day_events"`
	Day      []SegmentDTO `json:"day_events"`
	Spanning []SegmentDTO `json:"spanning_events"`
	All      []SegmentDTO `json:"all_events"`
}

type WeekViewDTO struct {
	Anchor     string            `json:"anchor"`
	Title      TitleDTO          `json:"title"`
	Days       []string          `json:"days"`
	Header     []SegmentDTO      `json:"all_day_events"`
	Positioned [][]PositionedDTO `json:"positioned_events"`
	Rejected   []RejectedDTO     `json:"rejected,omitempty"`
}

type DayViewDTO struct {
	Anchor     string          `json:"anchor"`
	Title      TitleDTO        `json:"title"`
	AllDay     []SegmentDTO    `json:"all_day_events"`
	Spanning   []SegmentDTO    `json:"spanning_events"`
	Positioned []PositionedDTO `json:"positioned_events"`
	Rejected   []RejectedDTO   `json:"rejected,omitempty"`
}

type AgendaViewDTO struct {
	Anchor   string         `json:"anchor"`
	Title    TitleDTO       `json:"title"`
	Days     []AgendaDayDTO `json:"days"`
	Rejected []RejectedDTO  `json:"rejected,omitempty"`
}

type AgendaDayDTO struct {
	Day    string       `json:"day"`
	Events []SegmentDTO `json:"events"`
}

type NavigateDTO struct {
	Date  string   `json:"date"`
	Title TitleDTO `json:"title"`
}

func toEventDTO(ev domain.Event) EventDTO {
	sk, sv, sz := ev.Start.Parts()
	ek, evv, ez := ev.End.Parts()
	return EventDTO{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       BoundaryDTO{Kind: sk, Value: sv, Zone: sz},
		End:         BoundaryDTO{Kind: ek, Value: evv, Zone: ez},
		AllDay:      ev.AllDay,
		ReadOnly:    ev.ReadOnly,
		Provider:    ev.Provider,
		AccountID:   ev.AccountID,
		CalendarID:  ev.CalendarID,
		Conference:  ev.Conference,
		Attendees:   ev.Attendees,
	}
}

func fromEventDTO(dto EventDTO) (domain.Event, error) {
	start, err := temporal.FromParts(dto.Start.Kind, dto.Start.Value, dto.Start.Zone)
	if err != nil {
		return domain.Event{}, fmt.Errorf("start: %w", err)
	}
	end, err := temporal.FromParts(dto.End.Kind, dto.End.Value, dto.End.Zone)
	if err != nil {
		return domain.Event{}, fmt.Errorf("end: %w", err)
	}
	return domain.Event{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		Location:    dto.Location,
		Start:       start,
		End:         end,
		AllDay:      dto.AllDay,
		ReadOnly:    dto.ReadOnly,
		Provider:    dto.Provider,
		AccountID:   dto.AccountID,
		CalendarID:  dto.CalendarID,
		Conference:  dto.Conference,
		Attendees:   dto.Attendees,
	}, nil
}

func toSegmentDTOs(segments []bucket.Segment) []SegmentDTO {
	out := make([]SegmentDTO, 0, len(segments))
	for _, seg := range segments {
		out = append(out, SegmentDTO{
			Event:      toEventDTO(seg.Item.Event),
			Start:      seg.Item.Start.Format(time.RFC3339),
			End:        seg.Item.End.Format(time.RFC3339),
			IsFirstDay: seg.IsFirstDay,
			IsLastDay:  seg.IsLastDay,
		})
	}
	return out
}

func toPositionedDTOs(positioned []layout.Positioned) []PositionedDTO {
	out := make([]PositionedDTO, 0, len(positioned))
	for _, p := range positioned {
		out = append(out, PositionedDTO{
			Event:  toEventDTO(p.Event),
			Top:    p.Top,
			Height: p.Height,
			Left:   p.Left,
			Width:  p.Width,
			ZIndex: p.ZIndex,
		})
	}
	return out
}

func toRejectedDTOs(rejected []collection.Rejected) []RejectedDTO {
	out := make([]RejectedDTO, 0, len(rejected))
	for _, r := range rejected {
		out = append(out, RejectedDTO{ID: r.ID, Reason: r.Reason})
	}
	return out
}

func toTitleDTO(t navigate.Title) TitleDTO {
	return TitleDTO{Full: t.Full, Short: t.Short}
}

func dayKeys(days []time.Time) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(bucket.DayKeyLayout)
	}
	return out
}

func toMonthViewDTO(v *service.MonthView) MonthViewDTO {
	buckets := make(map[string]DayBucketDTO, len(v.Buckets))
	for key, b := range v.Buckets {
		buckets[key] = DayBucketDTO{
			AllDay:   toSegmentDTOs(b.AllDay),
			Day:      toSegmentDTOs(b.Day),
			Spanning: toSegmentDTOs(b.Spanning),
			All:      toSegmentDTOs(b.All),
		}
	}
	return MonthViewDTO{
		Anchor:   v.Anchor.Format(bucket.DayKeyLayout),
		Title:    toTitleDTO(v.Title),
		Days:     dayKeys(v.Days),
		Buckets:  buckets,
		Rejected: toRejectedDTOs(v.Rejected),
	}
}

func toWeekViewDTO(v *service.WeekView) WeekViewDTO {
	positioned := make([][]PositionedDTO, len(v.Positioned))
	for i, col := range v.Positioned {
		positioned[i] = toPositionedDTOs(col)
	}
	return WeekViewDTO{
		Anchor:     v.Anchor.Format(bucket.DayKeyLayout),
		Title:      toTitleDTO(v.Title),
		Days:       dayKeys(v.Days),
		Header:     toSegmentDTOs(v.Header),
		Positioned: positioned,
		Rejected:   toRejectedDTOs(v.Rejected),
	}
}

func toDayViewDTO(v *service.DayView) DayViewDTO {
	return DayViewDTO{
		Anchor:     v.Anchor.Format(bucket.DayKeyLayout),
		Title:      toTitleDTO(v.Title),
		AllDay:     toSegmentDTOs(v.AllDay),
		Spanning:   toSegmentDTOs(v.Spanning),
		Positioned: toPositionedDTOs(v.Positioned),
		Rejected:   toRejectedDTOs(v.Rejected),
	}
}

func toAgendaViewDTO(v *service.AgendaView) AgendaViewDTO {
	days := make([]AgendaDayDTO, 0, len(v.Days))
	for _, d := range v.Days {
		days = append(days, AgendaDayDTO{
			Day:    d.Day.Format(bucket.DayKeyLayout),
			Events: toSegmentDTOs(d.Events),
		})
	}
	return AgendaViewDTO{
		Anchor:   v.Anchor.Format(bucket.DayKeyLayout),
		Title:    toTitleDTO(v.Title),
		Days:     days,
		Rejected: toRejectedDTOs(v.Rejected),
	}
}
