package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/orgagenda/internal/agenda"
	"github.com/nibzard/orgagenda/internal/outline"
)

// NoTasks is printed when a report has no rows.
const NoTasks = "No tasks!"

const headerWidth = 40

// Lines renders a report as aligned text lines. The header is included
// only when styles are enabled.
func Lines(rep *agenda.Report, s *Styles) []string {
	if rep.Empty() {
		return []string{NoTasks}
	}
	var lines []string
	if s.Enabled() {
		lines = append(lines, Header(rep.Options, s)...)
	}
	opts := RowOptions{Agenda: rep.Agenda, NumDays: rep.NumDays}
	rows := rep.Rows()
	cells := make([]Row, len(rows))
	for i, t := range rows {
		cells[i] = s.Colorize(t, opts)
	}
	return append(lines, Layout(cells, rep.Agenda)...)
}

// Text writes the report to w.
func Text(w io.Writer, rep *agenda.Report, colors bool) error {
	s := NewStyles(w, colors)
	for _, line := range Lines(rep, s) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Header returns the banner describing the report: the agenda window, the
// tag or category filter, or the state filter.
func Header(opts agenda.Options, s *Styles) []string {
	var title string
	switch {
	case opts.Agenda && opts.NumDays == 7:
		title = s.Render(StyleCheckbox, "WEEK AGENDA")
	case opts.Agenda:
		title = s.Render(StyleCheckbox, fmt.Sprintf("%d DAY AGENDA", opts.NumDays))
	case opts.Tags != "":
		title = matchBanner(s, "TAGS", opts.Tags)
	case opts.Categories != "":
		title = matchBanner(s, "CATEGORY", opts.Categories)
	default:
		kind := s.Render(StyleLate, "ALL")
		if opts.States != "" {
			kind = s.Render(stateStyle(opts.States), strings.ToUpper(opts.States))
		}
		title = s.Render(StyleCheckbox, "Global list of ") +
			s.Render(StyleTodo, "TODO") +
			s.Render(StyleCheckbox, " items of type: ") + kind
	}
	delim := s.Render(StyleURL, strings.Repeat("#", headerWidth))
	return []string{
		delim,
		lipgloss.PlaceHorizontal(headerWidth, lipgloss.Center, title),
		delim,
	}
}

func matchBanner(s *Styles, field, pattern string) string {
	return s.Render(StyleCheckbox, "Headlines with ") +
		s.Render(StyleTag, field+" ") +
		s.Render(StyleCheckbox, "match: ") +
		s.Render(StyleLate, pattern)
}

// jsonReport is the machine-readable form of a report.
type jsonReport struct {
	Today   string         `json:"today"`
	Agenda  bool           `json:"agenda"`
	NumDays int            `json:"num_days,omitempty"`
	Files   []string       `json:"files"`
	Tasks   []outline.Task `json:"tasks"`
}

// JSON writes the report's tasks with full date labels.
func JSON(w io.Writer, rep *agenda.Report) error {
	out := jsonReport{
		Today:  rep.Today.Format("2006-01-02"),
		Agenda: rep.Agenda,
		Files:  []string{},
		Tasks:  rep.Tasks,
	}
	if rep.Agenda {
		out.NumDays = rep.NumDays
	}
	for _, f := range rep.Files {
		out.Files = append(out.Files, f.Path)
	}
	if out.Tasks == nil {
		out.Tasks = []outline.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
