package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nibzard/orgagenda/internal/utils"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "ORGAGENDA_"

// loadFromEnv overrides config from ORGAGENDA_* variables. Lists of files
// use the OS path list separator; keyword lists are comma-separated.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	lookup := func(field string) (string, bool) {
		v, ok := os.LookupEnv(envName(field))
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		sources[field] = SourceEnv
		return strings.TrimSpace(v), true
	}
	setString := func(field string, dst *string) {
		if v, ok := lookup(field); ok {
			*dst = v
		}
	}
	setBool := func(field string, dst *bool) error {
		v, ok := lookup(field)
		if !ok {
			return nil
		}
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envName(field), err)
		}
		*dst = b
		return nil
	}
	setInt := func(field string, dst *int) error {
		v, ok := lookup(field)
		if !ok {
			return nil
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envName(field), err)
		}
		*dst = i
		return nil
	}

	if v, ok := lookup("files"); ok {
		cfg.Files = filepath.SplitList(v)
	}
	setString("rcfile", &cfg.RCFile)
	setString("states", &cfg.States)
	setString("tags", &cfg.Tags)
	setString("categories", &cfg.Categories)
	for field, dst := range map[string]*[]string{
		"keywords.in_progress": &cfg.Keywords.InProgress,
		"keywords.completed":   &cfg.Keywords.Completed,
	} {
		if v, ok := lookup(field); ok {
			words, err := keywordList(v)
			if err != nil {
				return fmt.Errorf("%s: %w", envName(field), err)
			}
			*dst = words
		}
	}
	setString("today", &cfg.Today)
	setString("format", &cfg.Format)
	setString("log_level", &cfg.LogLevel)
	setString("log_format", &cfg.LogFormat)

	for field, dst := range map[string]*bool{
		"colors":         &cfg.Colors,
		"agenda":         &cfg.Agenda,
		"log_timestamps": &cfg.LogTimestamps,
		"log_caller":     &cfg.LogCaller,
	} {
		if err := setBool(field, dst); err != nil {
			return err
		}
	}
	for field, dst := range map[string]*int{
		"num_days": &cfg.NumDays,
		"workers":  &cfg.Workers,
	} {
		if err := setInt(field, dst); err != nil {
			return err
		}
	}
	return nil
}

// envName returns the variable that overrides field.
func envName(field string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(field, ".", "_"))
}

// keywordList splits one keyword class. The "|" class separator of the rc
// file syntax has no meaning here since each class has its own variable.
func keywordList(v string) ([]string, error) {
	words := utils.SplitList(v)
	for _, w := range words {
		if strings.Contains(w, "|") {
			return nil, fmt.Errorf("%q: \"|\" is not allowed, set %s and %s separately",
				v, envName("keywords.in_progress"), envName("keywords.completed"))
		}
	}
	return words, nil
}

// boolFromString accepts the usual spellings of a boolean switch.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
