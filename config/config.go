package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

// Config is the daemon configuration, loaded from environment variables.
type Config struct {
	ListenAddr   string `env:"LISTEN_ADDR" envDefault:":8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/calgrid.db"`

	// Display settings.
	Timezone     string `env:"TIMEZONE" envDefault:"UTC"`
	WeekStart    int    `env:"WEEK_START" envDefault:"1"` // 0 = Sunday .. 6 = Saturday
	ShowWeekends bool   `env:"SHOW_WEEKENDS" envDefault:"true"`
	AgendaDays   int    `env:"AGENDA_DAYS" envDefault:"7"`

	// Week/day grid geometry.
	DayStartHour   int `env:"DAY_START_HOUR" envDefault:"0"`
	DayEndHour     int `env:"DAY_END_HOUR" envDefault:"24"`
	CellHeight     int `env:"CELL_HEIGHT" envDefault:"48"`      // pixels per hour
	MinEventHeight int `env:"MIN_EVENT_HEIGHT" envDefault:"12"` // pixels

	// Snapshot refresh schedule (standard cron spec).
	RefreshSpec string `env:"REFRESH_CRON" envDefault:"*/5 * * * *"`

	// HTTP basic auth for the API; empty disables it.
	APIUsername string `env:"API_USERNAME"`
	APIPassword string `env:"API_PASSWORD"`

	// Location is resolved from Timezone during Load.
	Location *time.Location `env:"-"`
}

// Load parses the environment and validates the derived settings.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.WeekStart < 0 || cfg.WeekStart > 6 {
		return nil, fmt.Errorf("WEEK_START must be 0-6, got %d", cfg.WeekStart)
	}
	if cfg.DayStartHour < 0 || cfg.DayEndHour > 24 || cfg.DayStartHour >= cfg.DayEndHour {
		return nil, fmt.Errorf("invalid visible hours %d-%d", cfg.DayStartHour, cfg.DayEndHour)
	}
	if cfg.AgendaDays <= 0 {
		return nil, fmt.Errorf("AGENDA_DAYS must be positive, got %d", cfg.AgendaDays)
	}
	if cfg.CellHeight <= 0 || cfg.MinEventHeight < 0 {
		return nil, fmt.Errorf("invalid grid geometry: cell height %d, min event height %d", cfg.CellHeight, cfg.MinEventHeight)
	}

	return cfg, nil
}

// WeekStartDay returns the configured first day of the week.
func (c *Config) WeekStartDay() time.Weekday {
	return time.Weekday(c.WeekStart)
}
