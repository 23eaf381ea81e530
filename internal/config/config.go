package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/studyplan/internal/scheduler"
)

// Config holds process-wide settings read from the environment.
type Config struct {
	// DBPath is empty when the default location should be used.
	DBPath          string
	Timezone        string
	LogUseCases     bool
	WeekdayCapHours float64
	WeekendCapHours float64
	Overflow        scheduler.OverflowPolicy
}

// DefaultConfig returns a Config matching scheduler.DefaultPolicy.
func DefaultConfig() Config {
	p := scheduler.DefaultPolicy()
	return Config{
		WeekdayCapHours: p.WeekdayCap.Hours(),
		WeekendCapHours: p.WeekendCap.Hours(),
		Overflow:        p.Overflow,
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset or malformed values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STUDYPLAN_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("STUDYPLAN_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYPLAN_WEEKDAY_CAP_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.WeekdayCapHours = f
		}
	}
	if v := os.Getenv("STUDYPLAN_WEEKEND_CAP_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.WeekendCapHours = f
		}
	}
	if v := os.Getenv("STUDYPLAN_OVERFLOW"); v != "" {
		if o, err := scheduler.ParseOverflowPolicy(v); err == nil {
			cfg.Overflow = o
		}
	}

	return cfg
}

// ResolveDBPath returns DBPath, or ~/.studyplan/studyplan.db when unset.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".studyplan", "studyplan.db"), nil
}

// Location resolves Timezone. An empty name means the host's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Policy maps the configuration onto scheduler.DefaultPolicy.
func (c Config) Policy() (scheduler.Policy, error) {
	loc, err := c.Location()
	if err != nil {
		return scheduler.Policy{}, err
	}

	p := scheduler.DefaultPolicy()
	p.Location = loc
	p.WeekdayCap = hoursToDuration(c.WeekdayCapHours)
	p.WeekendCap = hoursToDuration(c.WeekendCapHours)
	p.Overflow = c.Overflow

	if err := p.Validate(); err != nil {
		return scheduler.Policy{}, fmt.Errorf("invalid scheduling policy: %w", err)
	}
	return p, nil
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour)).Round(time.Minute)
}
