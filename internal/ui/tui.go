// Package ui provides the interactive agenda viewer.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nibzard/orgagenda/internal/agenda"
	"github.com/nibzard/orgagenda/internal/render"
)

// ErrNotTTY is returned when the viewer is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// Loader builds a fresh report, as an agenda or as a plain list.
type Loader func(ctx context.Context, agendaView bool) (*agenda.Report, error)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	colors bool
	agenda bool
	watch  []string
	output io.Writer
}

// WithColors enables styled rows.
func WithColors(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.colors = enabled
	}
}

// WithAgenda starts in the agenda view.
func WithAgenda(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.agenda = enabled
	}
}

// WithWatch reloads the report whenever one of paths changes.
func WithWatch(paths []string) TUIOption {
	return func(c *tuiConfig) {
		c.watch = paths
	}
}

// WithOutput sets the terminal the viewer draws to. It defaults to stdout.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.output = w
	}
}

// RunTUI starts the viewer and blocks until the user quits or ctx is done.
func RunTUI(ctx context.Context, load Loader, opts ...TUIOption) error {
	c := &tuiConfig{output: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}
	if !IsTTY(c.output) {
		return ErrNotTTY
	}

	m := newTUIModel(ctx, load, c)
	if len(c.watch) > 0 {
		w, err := newWatcher(c.watch)
		if err != nil {
			return fmt.Errorf("watching outline files: %w", err)
		}
		defer w.Close()
		m.watcher = w
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(c.output))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type tuiModel struct {
	ctx        context.Context
	load       Loader
	styles     *render.Styles
	agendaView bool

	viewport viewport.Model
	help     help.Model
	ready    bool
	width    int
	height   int

	report   *agenda.Report
	loadErr  error
	watchErr error
	watcher  *watcher
	loadedAt time.Time
	changed  string
}

type reportMsg struct {
	report *agenda.Report
	err    error
}

func newTUIModel(ctx context.Context, load Loader, c *tuiConfig) *tuiModel {
	return &tuiModel{
		ctx:        ctx,
		load:       load,
		styles:     render.NewStyles(c.output, c.colors),
		agendaView: c.agenda,
		help:       help.New(),
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), waitForChange(m.watcher))
}

func (m *tuiModel) loadCmd() tea.Cmd {
	ctx, load, agendaView := m.ctx, m.load, m.agendaView
	return func() tea.Msg {
		rep, err := load(ctx, agendaView)
		return reportMsg{report: rep, err: err}
	}
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			return m, m.loadCmd()
		case key.Matches(msg, keys.ToggleAgenda):
			m.agendaView = !m.agendaView
			return m, m.loadCmd()
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		}

	case reportMsg:
		m.report, m.loadErr = msg.report, msg.err
		m.loadedAt = time.Now()
		m.setContent()
		return m, nil

	case fileChangedMsg:
		m.changed = filepath.Base(msg.path)
		return m, tea.Batch(m.loadCmd(), waitForChange(m.watcher))

	case watchErrMsg:
		m.watchErr = msg.err
		return m, waitForChange(m.watcher)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// resize fits the viewport between the title line and the help footer.
func (m *tuiModel) resize() {
	if m.width == 0 {
		return
	}
	height := max(m.height-1-lineCount(m.help.View(keys)), 1)
	if !m.ready {
		m.viewport = viewport.New(m.width, height)
		m.ready = true
		m.setContent()
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = height
}

func (m *tuiModel) setContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines(), "\n"))
}

func (m *tuiModel) lines() []string {
	switch {
	case m.loadErr != nil:
		return []string{"Error loading outlines:", "  " + m.loadErr.Error()}
	case m.report == nil:
		return []string{"Loading..."}
	}
	return render.Lines(m.report, m.styles)
}

func (m *tuiModel) View() string {
	if !m.ready {
		return "Loading...\n"
	}
	var b strings.Builder
	b.WriteString(m.title())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m *tuiModel) title() string {
	mode := "TODO list"
	if m.agendaView {
		mode = "Agenda"
	}
	parts := []string{"orgagenda", mode}
	if m.report != nil {
		parts = append(parts, fmt.Sprintf("%d files", len(m.report.Files)))
	}
	if !m.loadedAt.IsZero() {
		parts = append(parts, "loaded "+m.loadedAt.Format("15:04:05"))
	}
	if m.changed != "" {
		parts = append(parts, "changed "+m.changed)
	}
	if m.watchErr != nil {
		parts = append(parts, "watch: "+m.watchErr.Error())
	}
	return m.styles.Render(render.StyleBright, strings.Join(parts, " | "))
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
