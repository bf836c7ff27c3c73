package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/orgagenda/internal/utils"
)

// Loader reads configuration files through a filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader returns a loader reading from fsys. A nil fsys uses the OS
// filesystem.
func NewLoader(fsys afero.Fs) *Loader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Loader{fs: fsys}
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.orgagenda/orgagenda.toml or OS-specific config dir)
// 3. Project config file (orgagenda.toml, .orgagenda.toml or orgagenda.yaml)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration from the OS filesystem and tracks the
// source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	return NewLoader(nil).Load(fs, args)
}

// Load merges every configuration layer and validates the result. Flags are
// registered on fs and parsed from args; fs.Args() holds the remainder.
func (l *Loader) Load(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. User config file
	if path := findUserConfigFile(l.fs); path != "" {
		if err := l.loadConfigFile(cfg, path, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Project config file (overrides user config)
	if path := findProjectConfigFile(l.fs); path != "" {
		if err := l.loadConfigFile(cfg, path, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Environment
	if err := loadFromEnv(cfg, sources); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	// 5. CLI flags
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	finalizeConfig(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return &ConfigWithSources{Config: cfg, Sources: sources}, nil
}

// fileConfig mirrors Config with optional fields so a file layer only
// overrides the keys it names.
type fileConfig struct {
	Files         []string       `toml:"files" yaml:"files"`
	RCFile        *string        `toml:"rcfile" yaml:"rcfile"`
	Colors        *bool          `toml:"colors" yaml:"colors"`
	Agenda        *bool          `toml:"agenda" yaml:"agenda"`
	NumDays       *int           `toml:"num_days" yaml:"num_days"`
	States        *string        `toml:"states" yaml:"states"`
	Tags          *string        `toml:"tags" yaml:"tags"`
	Categories    *string        `toml:"categories" yaml:"categories"`
	Keywords      KeywordsConfig `toml:"keywords" yaml:"keywords"`
	Today         *string        `toml:"today" yaml:"today"`
	Workers       *int           `toml:"workers" yaml:"workers"`
	Format        *string        `toml:"format" yaml:"format"`
	LogLevel      *string        `toml:"log_level" yaml:"log_level"`
	LogFormat     *string        `toml:"log_format" yaml:"log_format"`
	LogTimestamps *bool          `toml:"log_timestamps" yaml:"log_timestamps"`
	LogCaller     *bool          `toml:"log_caller" yaml:"log_caller"`
}

// loadConfigFile decodes a TOML or YAML file and applies the keys it sets.
func (l *Loader) loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return err
	}
	fc, err := decodeConfig(path, data)
	if err != nil {
		return err
	}

	if fc.Files != nil {
		cfg.Files = fc.Files
		sources["files"] = source
	}
	setSource(&cfg.RCFile, fc.RCFile, sources, "rcfile", source)
	setSource(&cfg.Colors, fc.Colors, sources, "colors", source)
	setSource(&cfg.Agenda, fc.Agenda, sources, "agenda", source)
	setSource(&cfg.NumDays, fc.NumDays, sources, "num_days", source)
	setSource(&cfg.States, fc.States, sources, "states", source)
	setSource(&cfg.Tags, fc.Tags, sources, "tags", source)
	setSource(&cfg.Categories, fc.Categories, sources, "categories", source)
	if fc.Keywords.InProgress != nil {
		cfg.Keywords.InProgress = fc.Keywords.InProgress
		sources["keywords.in_progress"] = source
	}
	if fc.Keywords.Completed != nil {
		cfg.Keywords.Completed = fc.Keywords.Completed
		sources["keywords.completed"] = source
	}
	setSource(&cfg.Today, fc.Today, sources, "today", source)
	setSource(&cfg.Workers, fc.Workers, sources, "workers", source)
	setSource(&cfg.Format, fc.Format, sources, "format", source)
	setSource(&cfg.LogLevel, fc.LogLevel, sources, "log_level", source)
	setSource(&cfg.LogFormat, fc.LogFormat, sources, "log_format", source)
	setSource(&cfg.LogTimestamps, fc.LogTimestamps, sources, "log_timestamps", source)
	setSource(&cfg.LogCaller, fc.LogCaller, sources, "log_caller", source)

	cfg.ConfigFiles = append(cfg.ConfigFiles, path)
	return nil
}

// decodeConfig decodes data by file extension. Unknown keys are errors.
func decodeConfig(path string, data []byte) (*fileConfig, error) {
	fc := &fileConfig{}
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		return fc, nil
	}

	meta, err := toml.Decode(string(data), fc)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return fc, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// setSource copies value into field when present and records its source.
func setSource[T any](field *T, value *T, sources map[string]ConfigSource, name string, source ConfigSource) {
	if value == nil {
		return
	}
	*field = *value
	sources[name] = source
}

// finalizeConfig normalizes values loaded from every layer.
func finalizeConfig(cfg *Config) {
	cfg.RCFile = utils.ExpandPath(cfg.RCFile)
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.Today = strings.TrimSpace(cfg.Today)
	cfg.Files = trimList(cfg.Files)
	cfg.Keywords.InProgress = trimList(cfg.Keywords.InProgress)
	cfg.Keywords.Completed = trimList(cfg.Keywords.Completed)
}

// trimList trims each item and drops empty ones.
func trimList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
