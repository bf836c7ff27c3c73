package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style names. The table mirrors the org agenda palette: task states on
// colored backgrounds, due-date proximity in red/green/blue, and inline
// markup in bright foregrounds.
const (
	StyleNormal      = "normal"
	StyleBright      = "bright"
	StyleTodo        = "todo"
	StyleDoing       = "doing"
	StyleWait        = "wait"
	StyleDeadline    = "deadline"
	StyleDeadlineTwo = "deadline_two"
	StyleScheduled   = "scheduled"
	StyleLate        = "late"
	StyleToday       = "today"
	StyleLater       = "later"
	StyleCheckbox    = "checkbox"
	StyleCode        = "code"
	StyleCategory    = "category"
	StyleTag         = "tag"
	StyleUrgent      = "urgent"
	StyleURL         = "url"
	StyleVerb        = "verb"
)

var (
	colorBlack   = lipgloss.Color("0")
	colorRed     = lipgloss.Color("1")
	colorGreen   = lipgloss.Color("2")
	colorYellow  = lipgloss.Color("3")
	colorBlue    = lipgloss.Color("4")
	colorMagenta = lipgloss.Color("5")
	colorCyan    = lipgloss.Color("6")
	colorWhite   = lipgloss.Color("7")
)

// Styles maps style names to lipgloss styles. When disabled every style
// renders text unchanged.
type Styles struct {
	enabled bool
	styles  map[string]lipgloss.Style
}

// NewStyles builds the palette on a renderer writing to w. The ANSI profile
// is forced when enabled so output is colored even when w is not a
// terminal, matching an explicit --colors request.
func NewStyles(w io.Writer, enabled bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if enabled {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return r.NewStyle().Foreground(c) }
	onBlack := func(c lipgloss.Color) lipgloss.Style { return fg(c).Background(colorBlack).Bold(true) }

	return &Styles{
		enabled: enabled,
		styles: map[string]lipgloss.Style{
			StyleNormal:      fg(colorWhite),
			StyleBright:      onBlack(colorWhite),
			StyleTodo:        fg(colorWhite).Background(colorRed),
			StyleDoing:       fg(colorWhite).Background(colorBlue),
			StyleWait:        fg(colorBlack).Background(colorYellow),
			StyleDeadline:    onBlack(colorRed),
			StyleDeadlineTwo: onBlack(colorYellow),
			StyleScheduled:   onBlack(colorCyan),
			StyleLate:        onBlack(colorRed),
			StyleToday:       onBlack(colorGreen),
			StyleLater:       onBlack(colorBlue),
			StyleCheckbox:    onBlack(colorMagenta),
			StyleCode:        fg(colorGreen).Bold(true),
			StyleCategory:    fg(colorMagenta).Bold(true),
			StyleTag:         fg(colorYellow).Bold(true),
			StyleUrgent:      fg(colorWhite).Background(colorRed).Bold(true),
			StyleURL:         fg(colorBlue).Bold(true),
			StyleVerb:        fg(colorCyan).Bold(true),
		},
	}
}

// Enabled reports whether styles emit escape sequences.
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Get returns the named style, or the normal style for unknown names.
func (s *Styles) Get(name string) lipgloss.Style {
	if st, ok := s.styles[name]; ok {
		return st
	}
	return s.styles[StyleNormal]
}

// Render applies the named style to text.
func (s *Styles) Render(name, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return s.Get(name).Render(text)
}
