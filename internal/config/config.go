package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quantbench/invest-backtest/internal/backtest"
	"github.com/quantbench/invest-backtest/internal/schedule"
)

// DateFormat is the layout for start/end dates in config files and flags.
const DateFormat = "2006-01-02"

// Defaults substituted for missing or invalid values. Invalid configuration
// never fails a run; it falls back to these.
const (
	DefaultFrequency    = string(schedule.Monthly)
	DefaultDipThreshold = backtest.DefaultDipThreshold
	DefaultMAWindow     = backtest.DefaultMAWindow
	DefaultGranularity  = string(backtest.GranularityYear)
	DefaultOutputDir    = "results"
)

// Config holds everything a backtest run needs, loadable from a JSON or
// YAML file with flag overrides on top.
type Config struct {
	DataFile     string  `json:"data_file" yaml:"data_file"`
	Start        string  `json:"start" yaml:"start"`
	End          string  `json:"end" yaml:"end"`
	Amount       float64 `json:"amount" yaml:"amount"`
	Frequency    string  `json:"frequency" yaml:"frequency"`
	DipThreshold float64 `json:"dip_threshold" yaml:"dip_threshold"`
	MAWindow     int     `json:"ma_window" yaml:"ma_window"`
	Granularity  string  `json:"granularity" yaml:"granularity"`
	OutputDir    string  `json:"output_dir" yaml:"output_dir"`
}

// Default returns a config with every field at its documented default.
func Default() *Config {
	return &Config{
		Frequency:    DefaultFrequency,
		DipThreshold: DefaultDipThreshold,
		MAWindow:     DefaultMAWindow,
		Granularity:  DefaultGranularity,
		OutputDir:    DefaultOutputDir,
	}
}

// Load reads a config file, dispatching on extension: .yaml/.yml are parsed
// as YAML, anything else as JSON.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config %s: %w", path, err)
		}
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces missing or invalid values with their defaults.
// Unparseable dates are cleared: an empty start means "from the first
// sample" and an empty end "through the last".
func (c *Config) Normalize() {
	if c.Start != "" {
		if _, err := time.Parse(DateFormat, c.Start); err != nil {
			c.Start = ""
		}
	}
	if c.End != "" {
		if _, err := time.Parse(DateFormat, c.End); err != nil {
			c.End = ""
		}
	}
	if c.Amount < 0 {
		c.Amount = 0
	}
	if !schedule.Frequency(c.Frequency).Valid() {
		c.Frequency = DefaultFrequency
	}
	if c.DipThreshold <= 0 {
		c.DipThreshold = DefaultDipThreshold
	}
	if c.MAWindow <= 0 {
		c.MAWindow = DefaultMAWindow
	}
	if !backtest.Granularity(c.Granularity).Valid() {
		c.Granularity = DefaultGranularity
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// Window resolves the configured date range. Missing bounds widen to the
// whole series; the engine swaps an inverted range itself.
func (c *Config) Window() (start, end time.Time) {
	start = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(2999, time.December, 31, 0, 0, 0, 0, time.UTC)
	if t, err := time.Parse(DateFormat, c.Start); err == nil {
		start = t
	}
	if t, err := time.Parse(DateFormat, c.End); err == nil {
		end = t
	}
	return start, end
}

// Backtest converts the file/flag representation into the engine's config.
func (c *Config) Backtest() backtest.Config {
	start, end := c.Window()
	return backtest.Config{
		Start:        start,
		End:          end,
		Amount:       c.Amount,
		Frequency:    schedule.Frequency(c.Frequency),
		DipThreshold: c.DipThreshold,
		MAWindow:     c.MAWindow,
	}.Normalized()
}
