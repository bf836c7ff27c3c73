package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/orgagenda/internal/orgdate"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultRCFile    = "~/.vimrc"
	DefaultNumDays   = 7
	DefaultWorkers   = 4
	DefaultFormat    = FormatText
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the full configuration for orgagenda.
type Config struct {
	// Outline files or glob patterns. Empty means use the rc file's
	// agenda list.
	Files  []string `toml:"files" yaml:"files"`
	RCFile string   `toml:"rcfile" yaml:"rcfile"`

	// Report
	Colors     bool   `toml:"colors" yaml:"colors"`
	Agenda     bool   `toml:"agenda" yaml:"agenda"`
	NumDays    int    `toml:"num_days" yaml:"num_days" validate:"min=1,max=366"`
	States     string `toml:"states" yaml:"states"`
	Tags       string `toml:"tags" yaml:"tags"`
	Categories string `toml:"categories" yaml:"categories"`

	// Keywords overrides the rc file's keyword lists when set.
	Keywords KeywordsConfig `toml:"keywords" yaml:"keywords"`

	// Today overrides the clock, as YYYY-MM-DD.
	Today   string `toml:"today" yaml:"today" validate:"omitempty,datetime=2006-01-02"`
	Workers int    `toml:"workers" yaml:"workers" validate:"min=0,max=256"`
	Format  string `toml:"format" yaml:"format" validate:"oneof=text json"`

	// Logging configuration
	LogLevel      string `toml:"log_level" yaml:"log_level" validate:"oneof=debug info warn error fatal"`
	LogFormat     string `toml:"log_format" yaml:"log_format" validate:"oneof=text json logfmt"`
	LogTimestamps bool   `toml:"log_timestamps" yaml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller" yaml:"log_caller"`

	// ConfigFiles lists the files that were merged, user file first.
	ConfigFiles []string `toml:"-" yaml:"-"`
}

// KeywordsConfig lists task state keywords by class.
type KeywordsConfig struct {
	InProgress []string `toml:"in_progress" yaml:"in_progress" validate:"omitempty,dive,required"`
	Completed  []string `toml:"completed" yaml:"completed" validate:"omitempty,dive,required"`
}

// IsSet reports whether any keyword was configured.
func (k KeywordsConfig) IsSet() bool {
	return len(k.InProgress) > 0 || len(k.Completed) > 0
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.RCFile = DefaultRCFile
	cfg.NumDays = DefaultNumDays
	cfg.Workers = DefaultWorkers
	cfg.Format = DefaultFormat
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"files",
		"rcfile",
		"colors",
		"agenda",
		"num_days",
		"states",
		"tags",
		"categories",
		"keywords.in_progress",
		"keywords.completed",
		"today",
		"workers",
		"format",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// TodayDate returns the configured date, or the civil date of now when
// none is set.
func (c *Config) TodayDate(now time.Time) (time.Time, error) {
	if c.Today == "" {
		return orgdate.Today(now), nil
	}
	d, err := orgdate.ParseDay(c.Today)
	if err != nil {
		return time.Time{}, fmt.Errorf("today: %w", err)
	}
	return d, nil
}

// Fields returns the configurable field keys in display order.
func Fields() []string {
	return configFields()
}

// Value renders the field named by key for display. Unknown keys give "".
func (c *Config) Value(key string) string {
	switch key {
	case "files":
		return strings.Join(c.Files, " ")
	case "rcfile":
		return c.RCFile
	case "colors":
		return strconv.FormatBool(c.Colors)
	case "agenda":
		return strconv.FormatBool(c.Agenda)
	case "num_days":
		return strconv.Itoa(c.NumDays)
	case "states":
		return c.States
	case "tags":
		return c.Tags
	case "categories":
		return c.Categories
	case "keywords.in_progress":
		return strings.Join(c.Keywords.InProgress, " ")
	case "keywords.completed":
		return strings.Join(c.Keywords.Completed, " ")
	case "today":
		return c.Today
	case "workers":
		return strconv.Itoa(c.Workers)
	case "format":
		return c.Format
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	}
	return ""
}
