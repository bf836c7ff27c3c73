package config

import (
	"flag"
	"strings"
)

// flagFields maps every flag name, short aliases included, to the config
// field it sets.
var flagFields = map[string]string{
	"c":              "colors",
	"colors":         "colors",
	"a":              "agenda",
	"agenda":         "agenda",
	"n":              "num_days",
	"num-days":       "num_days",
	"s":              "states",
	"states":         "states",
	"t":              "tags",
	"tags":           "tags",
	"g":              "categories",
	"categories":     "categories",
	"r":              "rcfile",
	"rcfile":         "rcfile",
	"f":              "files",
	"file":           "files",
	"today":          "today",
	"format":         "format",
	"workers":        "workers",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the config flags on fs, parses args and applies the
// flags that were explicitly set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("orgagenda", flag.ContinueOnError)
	}

	var (
		colors, agenda, logTimestamps, logCaller               bool
		numDays, workers                                       int
		states, tags, categories, rcfile, files, today, format string
		logLevel, logFormat                                    string
	)
	boolVar := func(p *bool, value bool, usage string, names ...string) {
		for _, name := range names {
			fs.BoolVar(p, name, value, usage)
		}
	}
	intVar := func(p *int, value int, usage string, names ...string) {
		for _, name := range names {
			fs.IntVar(p, name, value, usage)
		}
	}
	stringVar := func(p *string, value, usage string, names ...string) {
		for _, name := range names {
			fs.StringVar(p, name, value, usage)
		}
	}

	boolVar(&colors, cfg.Colors, "Colorize output", "c", "colors")
	boolVar(&agenda, cfg.Agenda, "Show the agenda view", "a", "agenda")
	intVar(&numDays, cfg.NumDays, "Number of days in the agenda window", "n", "num-days")
	stringVar(&states, cfg.States, "Filter by state regex", "s", "states")
	stringVar(&tags, cfg.Tags, "Filter by tag regex", "t", "tags")
	stringVar(&categories, cfg.Categories, "Filter by category regex", "g", "categories")
	stringVar(&rcfile, cfg.RCFile, "Vim config with org settings", "r", "rcfile")
	stringVar(&files, strings.Join(cfg.Files, " "), "Space-separated outline files", "f", "file")
	stringVar(&today, cfg.Today, "Override today (YYYY-MM-DD)", "today")
	stringVar(&format, cfg.Format, "Output format (text, json)", "format")
	intVar(&workers, cfg.Workers, "Files parsed in parallel (0 = unlimited)", "workers")
	stringVar(&logLevel, cfg.LogLevel, "Log level (debug, info, warn, error)", "log-level")
	stringVar(&logFormat, cfg.LogFormat, "Log format (text, json, logfmt)", "log-format")
	boolVar(&logTimestamps, cfg.LogTimestamps, "Show timestamps in logs", "log-timestamps")
	boolVar(&logCaller, cfg.LogCaller, "Show caller location in logs", "log-caller")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			set[field] = true
			sources[field] = SourceFlag
		}
	})

	if set["colors"] {
		cfg.Colors = colors
	}
	if set["agenda"] {
		cfg.Agenda = agenda
	}
	if set["num_days"] {
		cfg.NumDays = numDays
	}
	if set["states"] {
		cfg.States = states
	}
	if set["tags"] {
		cfg.Tags = tags
	}
	if set["categories"] {
		cfg.Categories = categories
	}
	if set["rcfile"] {
		cfg.RCFile = rcfile
	}
	if set["files"] {
		cfg.Files = strings.Fields(files)
	}
	if set["today"] {
		cfg.Today = today
	}
	if set["format"] {
		cfg.Format = format
	}
	if set["workers"] {
		cfg.Workers = workers
	}
	if set["log_level"] {
		cfg.LogLevel = logLevel
	}
	if set["log_format"] {
		cfg.LogFormat = logFormat
	}
	if set["log_timestamps"] {
		cfg.LogTimestamps = logTimestamps
	}
	if set["log_caller"] {
		cfg.LogCaller = logCaller
	}
	return nil
}
