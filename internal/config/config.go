package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		File string `yaml:"file"`
		TTL  string `yaml:"ttl"`
	} `yaml:"questions"`
	Cadence   CadenceConfig   `yaml:"cadence"`
	Selection SelectionConfig `yaml:"selection"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Report    ReportConfig    `yaml:"report"`
}

// CadenceConfig is the policy table for when and how much to send.
type CadenceConfig struct {
	Interval        string `yaml:"interval"`
	WeekdayBatch    int    `yaml:"weekday_batch"`
	WeekendBatch    int    `yaml:"weekend_batch"`
	WeekendHours    []int  `yaml:"weekend_hours"`
	ActiveStartHour int    `yaml:"active_start_hour"`
	ActiveEndHour   int    `yaml:"active_end_hour"`
	ClosingHour     int    `yaml:"closing_hour"`
	ClosingBatch    int    `yaml:"closing_batch"`
	BlackoutDate    string `yaml:"blackout_date"`
}

type SelectionConfig struct {
	Lookback string `yaml:"lookback"`
}

type BroadcastConfig struct {
	Pace       string            `yaml:"pace"`
	Anonymous  bool              `yaml:"anonymous"`
	ExamDate   string            `yaml:"exam_date"`
	ShareURL   string            `yaml:"share_url"`
	TopicIcons map[string]string `yaml:"topic_icons"`
}

type ReportConfig struct {
	GoodThreshold float64 `yaml:"good_threshold"`
	WarnThreshold float64 `yaml:"warn_threshold"`
}

// Load reads YAML config from path and fills in defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a config with every policy knob at its default value,
// used when no config file is supplied.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Cadence.WeekdayBatch == 0 {
		c.Cadence.WeekdayBatch = 2
	}
	if c.Cadence.WeekendBatch == 0 {
		c.Cadence.WeekendBatch = 10
	}
	if len(c.Cadence.WeekendHours) == 0 {
		c.Cadence.WeekendHours = []int{10, 14, 18, 22}
	}
	if c.Cadence.ActiveStartHour == 0 {
		c.Cadence.ActiveStartHour = 6
	}
	if c.Cadence.ActiveEndHour == 0 {
		c.Cadence.ActiveEndHour = 22
	}
	if c.Cadence.ClosingHour == 0 {
		c.Cadence.ClosingHour = 22
	}
	if c.Cadence.ClosingBatch == 0 {
		c.Cadence.ClosingBatch = 1
	}
	if c.Cadence.Interval == "" {
		c.Cadence.Interval = "1h"
	}
	if c.Selection.Lookback == "" {
		c.Selection.Lookback = "24h"
	}
	if c.Broadcast.Pace == "" {
		c.Broadcast.Pace = "3s"
	}
	if c.Report.GoodThreshold == 0 {
		c.Report.GoodThreshold = 70
	}
	if c.Report.WarnThreshold == 0 {
		c.Report.WarnThreshold = 40
	}
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// Date parses a YYYY-MM-DD value. An empty string yields a zero time and no error.
func Date(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t, nil
}
