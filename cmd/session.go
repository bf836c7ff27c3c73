package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/nibzard/orgagenda/internal/agenda"
	"github.com/nibzard/orgagenda/internal/config"
	"github.com/nibzard/orgagenda/internal/logging"
	"github.com/nibzard/orgagenda/internal/outline"
	"github.com/nibzard/orgagenda/internal/rcfile"
)

// session is the state every report command resolves before reading
// outline files.
type session struct {
	cfg      *config.Config
	sources  map[string]config.ConfigSource
	logger   *log.Logger
	rc       *rcfile.Settings
	rcErr    error
	keywords *outline.Keywords
	files    []string
	// filesFrom names where files came from: "arguments", a config
	// source, or "rc file".
	filesFrom string
}

// newSession builds the logger, reads the rc file and resolves keywords and
// the outline file list. args, when present, replace every configured file.
func (a *app) newSession(cws *config.ConfigWithSources, args []string) (*session, error) {
	cfg := cws.Config
	logger, err := logging.New(a.stderr, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		ReportCaller:    cfg.LogCaller,
		Prefix:          "orgagenda",
	})
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	s := &session{cfg: cfg, sources: cws.Sources, logger: logger}

	s.rc, s.rcErr = rcfile.Load(a.fs, cfg.RCFile)
	switch {
	case s.rcErr == nil:
		logger.Debug("read rc file", "path", s.rc.Path, "files", len(s.rc.Files), "keywords", s.rc.HasKeywords)
	case errors.Is(s.rcErr, fs.ErrNotExist) && cws.Sources["rcfile"] == config.SourceDefault:
		// Only an rc file named explicitly has to exist.
		logger.Debug("no rc file", "path", cfg.RCFile)
	default:
		return nil, fmt.Errorf("loading rc file: %w", s.rcErr)
	}

	if s.keywords, err = s.resolveKeywords(); err != nil {
		return nil, err
	}
	s.resolveFiles(args)
	return s, nil
}

// resolveKeywords prefers configured keywords, then the rc file's list,
// then the TODO/DONE defaults.
func (s *session) resolveKeywords() (*outline.Keywords, error) {
	switch {
	case s.cfg.Keywords.IsSet():
		k, err := outline.NewKeywords(s.cfg.Keywords.InProgress, s.cfg.Keywords.Completed)
		if err != nil {
			return nil, fmt.Errorf("config keywords: %w", err)
		}
		return k, nil
	case s.rc != nil && s.rc.HasKeywords:
		k, err := outline.NewKeywords(s.rc.InProgress, s.rc.Completed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.rc.Path, err)
		}
		return k, nil
	}
	if s.rc != nil {
		s.logger.Warn("rc file declares no g:org_todo_keywords, using TODO and DONE", "path", s.rc.Path)
	}
	return outline.DefaultKeywords(), nil
}

func (s *session) resolveFiles(args []string) {
	switch {
	case len(args) > 0:
		s.files, s.filesFrom = args, "arguments"
	case len(s.cfg.Files) > 0:
		s.files, s.filesFrom = s.cfg.Files, string(s.sources["files"])
	case s.rc != nil && len(s.rc.Files) > 0:
		s.files, s.filesFrom = s.rc.Files, "rc file"
	}
}

// collector returns an outline collector for the session.
func (s *session) collector(a *app) *agenda.Collector {
	return agenda.NewCollector(a.fs, outline.NewGrammar(s.keywords), s.cfg.Workers, s.logger)
}

// options returns report options for the configured filters.
func (s *session) options(a *app, agendaView bool) (agenda.Options, error) {
	today, err := s.cfg.TodayDate(a.now())
	if err != nil {
		return agenda.Options{}, err
	}
	return agenda.Options{
		Today:      today,
		Agenda:     agendaView,
		NumDays:    s.cfg.NumDays,
		States:     s.cfg.States,
		Tags:       s.cfg.Tags,
		Categories: s.cfg.Categories,
	}, nil
}

// report runs the collector over the session's files.
func (s *session) report(ctx context.Context, a *app, agendaView bool) (*agenda.Report, error) {
	opts, err := s.options(a, agendaView)
	if err != nil {
		return nil, err
	}
	rep, err := agenda.Run(ctx, s.collector(a), s.files, opts)
	if err != nil {
		if errors.Is(err, agenda.ErrNoFiles) {
			return nil, fmt.Errorf("%w: pass files as arguments, set -f, or list g:org_agenda_files in %s", err, s.cfg.RCFile)
		}
		return nil, err
	}
	s.logger.Debug("built report",
		"files", len(rep.Files),
		"rows", len(rep.Tasks),
		"agenda", rep.Agenda,
		"today", rep.Today.Format("2006-01-02"))
	return rep, nil
}
