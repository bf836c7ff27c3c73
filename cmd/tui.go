package cmd

import (
	"context"
	"flag"

	"github.com/nibzard/orgagenda/internal/agenda"
	"github.com/nibzard/orgagenda/internal/config"
	"github.com/nibzard/orgagenda/internal/logging"
	"github.com/nibzard/orgagenda/internal/ui"
)

// tuiCommand launches the interactive viewer.
func (a *app) tuiCommand(ctx context.Context, cws *config.ConfigWithSources, args []string) error {
	flags := flag.NewFlagSet("orgagenda tui", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	noWatch := flags.Bool("no-watch", false, "Do not reload when outline files change")
	if err := flags.Parse(args); err != nil {
		return err
	}

	s, err := a.newSession(cws, flags.Args())
	if err != nil {
		return err
	}
	// Log lines would tear the alternate screen.
	s.logger = logging.Discard()

	paths, err := s.collector(a).ExpandPaths(s.files)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return agenda.ErrNoFiles
	}

	load := func(ctx context.Context, agendaView bool) (*agenda.Report, error) {
		return s.report(ctx, a, agendaView)
	}
	opts := []ui.TUIOption{
		ui.WithColors(s.cfg.Colors || ui.IsTTY(a.stdout)),
		ui.WithAgenda(s.cfg.Agenda),
		ui.WithOutput(a.stdout),
	}
	if !*noWatch {
		opts = append(opts, ui.WithWatch(paths))
	}
	return ui.RunTUI(ctx, load, opts...)
}
