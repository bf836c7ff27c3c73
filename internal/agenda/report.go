package agenda

import (
	"context"
	"fmt"
	"time"

	"github.com/nibzard/orgagenda/internal/orgdate"
	"github.com/nibzard/orgagenda/internal/outline"
)

// Options selects the report mode and filters.
type Options struct {
	Today      time.Time
	Agenda     bool
	NumDays    int
	States     string
	Tags       string
	Categories string
}

// FilterOptions returns the outline filters the options describe.
func (o Options) FilterOptions() outline.FilterOptions {
	return outline.FilterOptions{
		Agenda:     o.Agenda,
		NumDays:    o.NumDays,
		States:     o.States,
		Tags:       o.Tags,
		Categories: o.Categories,
	}
}

// Report is an ordered task list ready for rendering.
type Report struct {
	Options
	Files []*outline.File
	Tasks []outline.Task
}

// Rows returns the tasks with repeated date labels blanked.
func (r *Report) Rows() []outline.Task {
	return SuppressRepeatedDates(r.Tasks)
}

// Empty reports whether the report has nothing to show.
func (r *Report) Empty() bool {
	return len(r.Tasks) == 0
}

// Build orders merged tasks for display. In agenda mode the tasks pass
// through Synthesize, otherwise SortByDays.
func Build(tasks []outline.Task, opts Options) (*Report, error) {
	r := &Report{Options: opts}
	if !opts.Agenda {
		r.Tasks = SortByDays(tasks)
		return r, nil
	}
	if opts.NumDays < 1 {
		return nil, fmt.Errorf("agenda window must be at least one day, got %d", opts.NumDays)
	}
	rows, err := Synthesize(tasks, opts.Today, opts.NumDays)
	if err != nil {
		return nil, err
	}
	r.Tasks = rows
	return r, nil
}

// Run expands paths, collects every file, and builds the report.
func Run(ctx context.Context, c *Collector, paths []string, opts Options) (*Report, error) {
	filters, err := outline.BuildFilters(opts.FilterOptions())
	if err != nil {
		return nil, err
	}
	expanded, err := c.ExpandPaths(paths)
	if err != nil {
		return nil, err
	}
	files, err := c.Collect(ctx, expanded, outline.ExtractOptions{
		Today:   orgdate.Today(opts.Today),
		Filters: filters,
	})
	if err != nil {
		return nil, err
	}
	r, err := Build(Merge(files), opts)
	if err != nil {
		return nil, err
	}
	r.Files = files
	c.logger.Debug("report built", "files", len(files), "rows", len(r.Tasks), "agenda", opts.Agenda)
	return r, nil
}
