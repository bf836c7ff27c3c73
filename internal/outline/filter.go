package outline

import (
	"fmt"
	"regexp"
)

// FilterKind enumerates the supported task filters.
type FilterKind int

const (
	FilterAgenda FilterKind = iota
	FilterState
	FilterTag
	FilterCategory
)

func (k FilterKind) String() string {
	switch k {
	case FilterAgenda:
		return "agenda"
	case FilterState:
		return "states"
	case FilterTag:
		return "tags"
	case FilterCategory:
		return "categories"
	default:
		return fmt.Sprintf("filter(%d)", int(k))
	}
}

// PatternError reports a filter pattern that does not compile.
type PatternError struct {
	Kind    FilterKind
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s filter pattern %q: %v", e.Kind, e.Pattern, e.Err)
}

// Unwrap returns the underlying compile error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Filter is a subtractive predicate over tasks.
type Filter struct {
	Kind    FilterKind
	Days    int
	Pattern string

	re *regexp.Regexp
}

// AgendaFilter keeps tasks due in fewer than days days.
func AgendaFilter(days int) Filter {
	return Filter{Kind: FilterAgenda, Days: days}
}

// NewPatternFilter compiles a case-insensitive filter on state, tag, or
// category.
func NewPatternFilter(kind FilterKind, pattern string) (Filter, error) {
	if kind == FilterAgenda {
		return Filter{}, fmt.Errorf("agenda filter takes a day count, not a pattern")
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Filter{}, &PatternError{Kind: kind, Pattern: pattern, Err: err}
	}
	return Filter{Kind: kind, Pattern: pattern, re: re}, nil
}

// Keep reports whether t passes the filter.
func (f Filter) Keep(t Task) bool {
	switch f.Kind {
	case FilterAgenda:
		return t.Days < f.Days
	case FilterState:
		return f.re.MatchString(t.State)
	case FilterTag:
		return f.re.MatchString(t.Tag)
	case FilterCategory:
		return f.re.MatchString(t.Category.Joined(" "))
	}
	return true
}

// ApplyFilters returns the tasks passing every filter.
func ApplyFilters(tasks []Task, filters []Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		keep := true
		for _, f := range filters {
			if !f.Keep(t) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}

// FilterOptions names the optional filters a report applies.
type FilterOptions struct {
	Agenda     bool
	NumDays    int
	States     string
	Tags       string
	Categories string
}

// BuildFilters converts options into filters, in agenda, state, tag,
// category order.
func BuildFilters(opts FilterOptions) ([]Filter, error) {
	var filters []Filter
	if opts.Agenda {
		filters = append(filters, AgendaFilter(opts.NumDays))
	}
	patterns := []struct {
		kind    FilterKind
		pattern string
	}{
		{FilterState, opts.States},
		{FilterTag, opts.Tags},
		{FilterCategory, opts.Categories},
	}
	for _, p := range patterns {
		if p.pattern == "" {
			continue
		}
		f, err := NewPatternFilter(p.kind, p.pattern)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}
