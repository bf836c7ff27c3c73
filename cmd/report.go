package cmd

import (
	"context"

	"github.com/nibzard/orgagenda/internal/config"
	"github.com/nibzard/orgagenda/internal/render"
)

// reportCommand prints the TODO list, or the agenda when agendaView is set
// or the agenda option is on.
func (a *app) reportCommand(ctx context.Context, cws *config.ConfigWithSources, args []string, agendaView bool) error {
	s, err := a.newSession(cws, args)
	if err != nil {
		return err
	}
	rep, err := s.report(ctx, a, agendaView || s.cfg.Agenda)
	if err != nil {
		return err
	}
	if s.cfg.Format == config.FormatJSON {
		return render.JSON(a.stdout, rep)
	}
	return render.Text(a.stdout, rep, s.cfg.Colors)
}
