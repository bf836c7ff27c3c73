package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/nibzard/orgagenda/internal/agenda"
	"github.com/nibzard/orgagenda/internal/config"
	"github.com/nibzard/orgagenda/internal/outline"
)

type fileSummary struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Nodes    int    `json:"nodes"`
	Active   int    `json:"active"`
}

// filesCommand lists the resolved outline files with their titles and
// active task counts. Filters do not apply.
func (a *app) filesCommand(ctx context.Context, cws *config.ConfigWithSources, args []string) error {
	s, err := a.newSession(cws, args)
	if err != nil {
		return err
	}
	opts, err := s.options(a, false)
	if err != nil {
		return err
	}
	c := s.collector(a)
	paths, err := c.ExpandPaths(s.files)
	if err != nil {
		return err
	}
	files, err := c.Collect(ctx, paths, outline.ExtractOptions{Today: opts.Today})
	if err != nil {
		if len(paths) == 0 {
			return fmt.Errorf("%w (files from %s)", agenda.ErrNoFiles, orNone(s.filesFrom))
		}
		return err
	}

	summaries := make([]fileSummary, len(files))
	for i, f := range files {
		summaries[i] = fileSummary{
			Path:     f.Path,
			Title:    f.Title(),
			Category: f.Properties.Get("category"),
			Nodes:    f.NodeCount(),
			Active:   len(f.Active()),
		}
	}

	if s.cfg.Format == config.FormatJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tACTIVE\tNODES\tPATH")
	for _, f := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", f.Title, f.Active, f.Nodes, f.Path)
	}
	return tw.Flush()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
