package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nibzard/orgagenda/internal/config"
	"github.com/nibzard/orgagenda/internal/outline"
)

// errDoctorFailed is returned when any doctor check fails.
var errDoctorFailed = errors.New("doctor checks failed")

// doctorCommand checks config files, the rc file, keywords and every
// outline file.
func (a *app) doctorCommand(ctx context.Context, cws *config.ConfigWithSources, args []string) error {
	flags := flag.NewFlagSet("orgagenda doctor", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	verbose := flags.Bool("v", false, "Verbose output")
	if err := flags.Parse(args); err != nil {
		return err
	}

	w := a.stdout
	cfg := cws.Config
	allOK := true

	fmt.Fprintln(w, "orgagenda doctor")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	// Config files
	fmt.Fprintln(w, "Config files:")
	if len(cfg.ConfigFiles) == 0 {
		fmt.Fprintln(w, "  ⚠️  None found (using defaults)")
	}
	for _, path := range cfg.ConfigFiles {
		if err := config.ValidateFile(a.fs, path); err != nil {
			fmt.Fprintf(w, "  ❌ %s\n", path)
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(w, "     - %s\n", line)
			}
			allOK = false
			continue
		}
		fmt.Fprintf(w, "  ✅ %s\n", path)
	}
	fmt.Fprintln(w)

	s, err := a.newSession(cws, flags.Args())
	if err != nil {
		fmt.Fprintf(w, "Setup:\n  ❌ %v\n\n", err)
		fmt.Fprintln(w, "⚠️  Some checks failed.")
		return errDoctorFailed
	}

	// RC file
	fmt.Fprintf(w, "RC file: %s\n", cfg.RCFile)
	switch {
	case errors.Is(s.rcErr, fs.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found")
	case s.rc != nil:
		fmt.Fprintf(w, "  ✅ OK (%d agenda files)\n", len(s.rc.Files))
		if !s.rc.HasKeywords {
			fmt.Fprintln(w, "  ⚠️  No g:org_todo_keywords (TODO and DONE are used)")
		}
	}
	fmt.Fprintln(w)

	// Keywords
	fmt.Fprintln(w, "Keywords:")
	fmt.Fprintf(w, "  In progress: %s\n", strings.Join(s.keywords.InProgress, " "))
	fmt.Fprintf(w, "  Completed:   %s\n", orNone(strings.Join(s.keywords.Completed, " ")))
	if *verbose {
		fmt.Fprintf(w, "  In-progress pattern: %s\n", orNone(s.keywords.InProgressPattern()))
		fmt.Fprintf(w, "  Completed pattern:   %s\n", orNone(s.keywords.CompletedPattern()))
	}
	fmt.Fprintln(w)

	// Outline files
	fmt.Fprintf(w, "Outline files (from %s):\n", orNone(s.filesFrom))
	opts, err := s.options(a, false)
	if err != nil {
		return err
	}
	c := s.collector(a)
	paths, err := c.ExpandPaths(s.files)
	if err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	}
	if err == nil && len(paths) == 0 {
		fmt.Fprintln(w, "  ❌ No outline files")
		allOK = false
	}
	for _, path := range paths {
		files, err := c.Collect(ctx, []string{path}, outline.ExtractOptions{Today: opts.Today})
		if err != nil {
			fmt.Fprintf(w, "  ❌ %v\n", err)
			allOK = false
			continue
		}
		f := files[0]
		fmt.Fprintf(w, "  ✅ %s (%d active)\n", path, len(f.Active()))
		if *verbose {
			for _, t := range f.Active() {
				fmt.Fprintf(w, "       %s %s %s\n", t.State, strings.TrimSpace(t.Text), t.Date)
			}
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return errDoctorFailed
}
