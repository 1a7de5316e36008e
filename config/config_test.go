package config_test

import (
	"testing"
	"time"

	"github.com/calgrid/calgrid/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %v, want UTC", cfg.Location)
	}
	if cfg.WeekStartDay() != time.Monday {
		t.Errorf("WeekStartDay() = %v, want Monday", cfg.WeekStartDay())
	}
	if !cfg.ShowWeekends || cfg.AgendaDays != 7 {
		t.Errorf("display defaults = weekends %v, agenda %d", cfg.ShowWeekends, cfg.AgendaDays)
	}
	if cfg.DayStartHour != 0 || cfg.DayEndHour != 24 {
		t.Errorf("visible hours = %d-%d, want 0-24", cfg.DayStartHour, cfg.DayEndHour)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TIMEZONE", "America/New_York")
	t.Setenv("WEEK_START", "0")
	t.Setenv("SHOW_WEEKENDS", "false")
	t.Setenv("DAY_START_HOUR", "8")
	t.Setenv("DAY_END_HOUR", "20")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Location.String() != "America/New_York" {
		t.Errorf("Location = %v, want America/New_York", cfg.Location)
	}
	if cfg.WeekStartDay() != time.Sunday {
		t.Errorf("WeekStartDay() = %v, want Sunday", cfg.WeekStartDay())
	}
	if cfg.ShowWeekends {
		t.Error("ShowWeekends = true, want false")
	}
	if cfg.DayStartHour != 8 || cfg.DayEndHour != 20 {
		t.Errorf("visible hours = %d-%d, want 8-20", cfg.DayStartHour, cfg.DayEndHour)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown timezone", "TIMEZONE", "Mars/Olympus"},
		{"week start out of range", "WEEK_START", "9"},
		{"inverted hours", "DAY_START_HOUR", "23"},
		{"zero agenda window", "AGENDA_DAYS", "0"},
		{"zero cell height", "CELL_HEIGHT", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if tt.name == "inverted hours" {
				t.Setenv("DAY_END_HOUR", "8")
			}
			if _, err := config.Load(); err == nil {
				t.Errorf("Load() with %s=%s succeeded", tt.key, tt.value)
			}
		})
	}
}
