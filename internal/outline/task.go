package outline

import (
	"strings"
	"time"

	"github.com/nibzard/orgagenda/internal/orgdate"
)

// Category is the ordered list of categories declared by a task's
// enclosing scopes, outermost first.
type Category []string

// String joins the categories for display.
func (c Category) String() string {
	return strings.Join(c, ": ")
}

// Joined joins the categories with sep.
func (c Category) Joined(sep string) string {
	return strings.Join(c, sep)
}

// Task is one active outline entry. Tasks are values: every stage of the
// pipeline copies before changing a field.
type Task struct {
	Level          string   `json:"level"`
	State          string   `json:"state"`
	Text           string   `json:"text"`
	Checkbox       string   `json:"checkbox"`
	Date           string   `json:"date"`
	Annotation     string   `json:"annotation"`
	AnnotationDate string   `json:"annotation_date"`
	Tag            string   `json:"tag"`
	Category       Category `json:"category"`
	Days           int      `json:"days"`
	Source         string   `json:"source,omitempty"`
	Placeholder    bool     `json:"placeholder,omitempty"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	if t.Category != nil {
		t.Category = append(Category(nil), t.Category...)
	}
	return t
}

// Secondary date labels after NormalizeLabel.
const (
	LabelDeadline  = "Deadline:"
	LabelScheduled = "Scheduled:"
)

// IsDeadline reports whether the secondary annotation marks a deadline.
func (t Task) IsDeadline() bool {
	return t.Annotation == LabelDeadline
}

// IsScheduled reports whether the secondary annotation marks a planned start.
func (t Task) IsScheduled() bool {
	return t.Annotation == LabelScheduled
}

// CloneTasks deep-copies a task list.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// NewPlaceholder returns an otherwise blank task for a day with no entries.
func NewPlaceholder(token string, today time.Time) (Task, error) {
	days, err := orgdate.DaysUntil(token, today)
	if err != nil {
		return Task{}, err
	}
	return Task{Date: token, Days: days, Placeholder: true}, nil
}

// taskFromMatch converts a grammar match into a task. A DEADLINE or
// SCHEDULED date stands in for the primary one when the line carries no
// inline date. Other labels never make a task dated.
func taskFromMatch(m Match) Task {
	date := m.Date
	if date == "" && (m.Label == LabelDeadline || m.Label == LabelScheduled) {
		date = m.LabelDate
	}
	return Task{
		Level:          m.Level,
		State:          m.State,
		Text:           m.Text,
		Checkbox:       m.Checkbox,
		Date:           date,
		Annotation:     m.Label,
		AnnotationDate: m.LabelDate,
		Tag:            m.Tag,
	}
}
