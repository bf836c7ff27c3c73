package agenda

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/nibzard/orgagenda/internal/outline"
	"github.com/nibzard/orgagenda/internal/parallel"
	"github.com/nibzard/orgagenda/internal/utils"
)

// ErrNoFiles is returned when no outline files were given or resolved.
var ErrNoFiles = errors.New("no outline files")

// Collector reads and parses outline files.
type Collector struct {
	fs      afero.Fs
	grammar *outline.Grammar
	workers int
	logger  *log.Logger
}

// NewCollector returns a collector reading from fsys with at most workers
// files in flight. A nil fsys reads the OS filesystem; workers of 0 reads
// every file at once.
func NewCollector(fsys afero.Fs, g *outline.Grammar, workers int, logger *log.Logger) *Collector {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if g == nil {
		g = outline.NewGrammar(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Collector{fs: fsys, grammar: g, workers: workers, logger: logger}
}

// ExpandPaths expands "~", environment variables and glob patterns. Plain
// paths are kept even when they do not exist so the read reports them.
// Glob matches are sorted; a pattern that matches nothing is skipped.
func (c *Collector) ExpandPaths(patterns []string) ([]string, error) {
	var out []string
	for _, p := range patterns {
		p = utils.ExpandPath(p)
		if p == "" {
			continue
		}
		if !utils.HasGlobMeta(p) {
			out = append(out, p)
			continue
		}
		matches, err := afero.Glob(c.fs, p)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", p, err)
		}
		if len(matches) == 0 {
			c.logger.Warn("pattern matched no files", "pattern", p)
			continue
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

// Collect reads and parses every path. Files are parsed concurrently but
// returned in argument order. The first unreadable or unparseable file
// aborts the run.
func (c *Collector) Collect(ctx context.Context, paths []string, opts outline.ExtractOptions) ([]*outline.File, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	files, err := parallel.Map(ctx, c.workers, paths,
		func(path string) string { return path },
		func(ctx context.Context, path string) (*outline.File, error) {
			return c.load(ctx, path, opts)
		})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Collector) load(ctx context.Context, path string, opts outline.ExtractOptions) (*outline.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	opts.Source = path
	f, err := outline.Parse(path, string(data), c.grammar, opts)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("parsed outline",
		"file", path,
		"nodes", f.NodeCount(),
		"active", len(f.Active()))
	return f, nil
}

// Merge concatenates the active tasks of files in order. Tasks are not
// de-duplicated across files.
func Merge(files []*outline.File) []outline.Task {
	var out []outline.Task
	for _, f := range files {
		out = append(out, outline.CloneTasks(f.Active())...)
	}
	return out
}
