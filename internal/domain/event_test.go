package domain_test

import (
	"testing"
	"time"

	"github.com/calgrid/calgrid/internal/domain"
	"github.com/calgrid/calgrid/internal/temporal"
)

func TestValidate(t *testing.T) {
	start := time.Date(2026, time.June, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   domain.Event
		wantErr bool
	}{
		{
			name: "valid timed",
			event: domain.Event{
				ID:    "ok",
				Start: temporal.NewInstant(start),
				End:   temporal.NewInstant(start.Add(time.Hour)),
			},
		},
		{
			name: "valid all day",
			event: domain.Event{
				ID:     "ok-allday",
				AllDay: true,
				Start:  temporal.NewDate(2026, time.June, 15),
				End:    temporal.NewDate(2026, time.June, 16),
			},
		},
		{
			name: "zero duration",
			event: domain.Event{
				ID:    "point",
				Start: temporal.NewInstant(start),
				End:   temporal.NewInstant(start),
			},
		},
		{
			name: "missing id",
			event: domain.Event{
				Start: temporal.NewInstant(start),
				End:   temporal.NewInstant(start.Add(time.Hour)),
			},
			wantErr: true,
		},
		{
			name: "end before start",
			event: domain.Event{
				ID:    "inverted",
				Start: temporal.NewInstant(start),
				End:   temporal.NewInstant(start.Add(-time.Hour)),
			},
			wantErr: true,
		},
		{
			name: "all day with instant boundary",
			event: domain.Event{
				ID:     "mixed",
				AllDay: true,
				Start:  temporal.NewDate(2026, time.June, 15),
				End:    temporal.NewInstant(start),
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate(time.UTC)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsMultiDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation error = %v", err)
	}

	allDay := domain.Event{
		ID:     "a",
		AllDay: true,
		Start:  temporal.NewDate(2026, time.June, 15),
		End:    temporal.NewDate(2026, time.June, 16),
	}
	if !allDay.IsMultiDay(ny) {
		t.Error("all-day event not multi-day")
	}

	overnight := domain.Event{
		ID:    "o",
		Start: temporal.NewZoned(time.Date(2026, time.June, 15, 23, 30, 0, 0, ny), ny),
		End:   temporal.NewZoned(time.Date(2026, time.June, 16, 0, 30, 0, 0, ny), ny),
	}
	if !overnight.IsMultiDay(ny) {
		t.Error("overnight event not multi-day")
	}

	// A UTC instant pair that crosses midnight in UTC but not in the
	// display zone stays single-day.
	sameLocalDay := domain.Event{
		ID:    "s",
		Start: temporal.NewInstant(time.Date(2026, time.June, 15, 23, 0, 0, 0, time.UTC)),
		End:   temporal.NewInstant(time.Date(2026, time.June, 16, 1, 0, 0, 0, time.UTC)),
	}
	if sameLocalDay.IsMultiDay(ny) {
		t.Error("event within one New York day reported multi-day")
	}
}

func TestFormatTimeRange(t *testing.T) {
	start := time.Date(2026, time.June, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event domain.Event
		want  string
	}{
		{
			name: "timed",
			event: domain.Event{
				Start: temporal.NewInstant(start),
				End:   temporal.NewInstant(start.Add(90 * time.Minute)),
			},
			want: "09:00-10:30",
		},
		{
			name: "point",
			event: domain.Event{
				Start: temporal.NewInstant(start),
				End:   temporal.NewInstant(start),
			},
			want: "09:00",
		},
		{
			name: "all day",
			event: domain.Event{
				AllDay: true,
				Start:  temporal.NewDate(2026, time.June, 15),
				End:    temporal.NewDate(2026, time.June, 16),
			},
			want: "all day",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.FormatTimeRange(time.UTC); got != tt.want {
				t.Errorf("FormatTimeRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseView(t *testing.T) {
	for _, valid := range []string{"month", "week", "day", "agenda"} {
		v, err := domain.ParseView(valid)
		if err != nil {
			t.Errorf("ParseView(%q) error = %v", valid, err)
		}
		if string(v) != valid {
			t.Errorf("ParseView(%q) = %q", valid, v)
		}
	}
	if _, err := domain.ParseView("year"); err == nil {
		t.Error("ParseView(year) error = nil, want error")
	}
}
