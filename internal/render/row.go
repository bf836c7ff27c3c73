package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/orgagenda/internal/outline"
)

// Row holds the decorated cells of one output line.
type Row struct {
	Date       string
	Category   string
	Annotation string
	State      string
	Text       string
	Checkbox   string
	Tag        string
}

// RowOptions carries the report context a row's styling depends on.
type RowOptions struct {
	Agenda  bool
	NumDays int
}

// Colorize decorates a task's fields. Styling never changes the visible
// text except for inline markup delimiters.
func (s *Styles) Colorize(t outline.Task, opts RowOptions) Row {
	tagStyle := StyleTag
	if strings.Contains(strings.ToLower(t.Tag), "urgent") {
		tagStyle = StyleUrgent
	}

	annStyle := StyleNormal
	switch {
	case t.IsDeadline() || strings.HasPrefix(t.Annotation, "In "):
		annStyle = StyleDeadline
		if opts.Agenda && float64(t.Days) > math.Ceil(float64(opts.NumDays)/2) {
			annStyle = StyleDeadlineTwo
		}
	case t.IsScheduled():
		annStyle = StyleScheduled
	}

	due := StyleLater
	switch {
	case t.Placeholder:
		due = StyleBright
	case t.Days < 0:
		due = StyleLate
	case t.Days == 0:
		due = StyleToday
	}

	r := Row{
		Date:       s.Render(due, t.Date),
		Annotation: s.Render(annStyle, t.Annotation),
		State:      s.Render(stateStyle(t.State), strings.TrimSpace(t.State)),
		Checkbox:   s.Render(StyleCheckbox, t.Checkbox),
		Tag:        s.Render(tagStyle, t.Tag),
	}
	category := t.Category.String()
	if t.Days > 0 {
		r.Category = s.Render(StyleCategory, category)
		r.Text = s.Inline(t.Text, StyleNormal)
	} else {
		r.Category = s.Render(due, category)
		r.Text = s.Inline(t.Text, annStyle)
	}
	return r
}

// stateStyle picks the style for a task state keyword.
func stateStyle(state string) string {
	state = strings.ToLower(strings.TrimSpace(state))
	switch {
	case state == "":
		return StyleNormal
	case state == "todo":
		return StyleTodo
	case strings.HasPrefix(state, "wait"):
		return StyleWait
	default:
		return StyleDoing
	}
}

// Minimum category column widths, wide enough for the date labels of each
// mode.
const (
	agendaCategoryWidth = 16
	plainCategoryWidth  = 14
)

// Layout pads rows into aligned columns:
//
//	DATE CATEGORY ANNOTATION STATE TEXT CHECKBOX TAG
//
// Widths are measured on visible text, ignoring escape sequences.
func Layout(rows []Row, agenda bool) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := struct{ date, category, annotation, state, text, checkbox int }{}
	for _, r := range rows {
		widths.date = max(widths.date, lipgloss.Width(r.Date))
		widths.category = max(widths.category, lipgloss.Width(r.Category))
		widths.annotation = max(widths.annotation, lipgloss.Width(r.Annotation))
		widths.state = max(widths.state, lipgloss.Width(r.State))
		widths.text = max(widths.text, lipgloss.Width(r.Text))
		widths.checkbox = max(widths.checkbox, lipgloss.Width(r.Checkbox))
	}
	minCategory := plainCategoryWidth
	if agenda {
		minCategory = agendaCategoryWidth
	}
	widths.category = max(widths.category, minCategory)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		var b strings.Builder
		b.WriteString(padRight(r.Date, widths.date))
		b.WriteString(" ")
		b.WriteString(padRight(r.Category, widths.category+1))
		b.WriteString(padLeft(r.Annotation, widths.annotation+1))
		b.WriteString(" ")
		b.WriteString(padRight(r.State, widths.state+2))
		b.WriteString(padRight(r.Text, widths.text+1))
		b.WriteString(padRight(r.Checkbox, widths.checkbox+1))
		b.WriteString(r.Tag)
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

func padRight(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
