// Package agenda merges tasks from many outline files into one ordered
// report.
//
// In agenda mode the report covers a window of days starting today. Every
// day in the window gets at least one row, deadlines falling inside the
// window are repeated under today with a countdown, and overdue deadlines
// move to today. Otherwise tasks are ordered by days until due.
package agenda

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/nibzard/orgagenda/internal/orgdate"
	"github.com/nibzard/orgagenda/internal/outline"
)

// Synthesize builds the agenda rows for a window of numDays days starting
// at today. The input is not modified. Returned dates are display labels
// such as "Monday    08 Jan".
func Synthesize(tasks []outline.Task, today time.Time, numDays int) ([]outline.Task, error) {
	list := outline.CloneTasks(tasks)
	todayToken := orgdate.Token(orgdate.Today(today))
	width := countdownWidth(list)

	var repeats []outline.Task
	for i, t := range list {
		if !t.IsDeadline() {
			continue
		}
		switch {
		case t.Days > 0 && t.Days < numDays:
			r := t.Clone()
			r.Date = todayToken
			r.Annotation = Countdown(t.Days, width)
			repeats = append(repeats, r)
		case t.Days < 0:
			list[i].Date = todayToken
			list[i].Annotation = Countdown(t.Days, width)
		}
	}
	list = append(list, repeats...)

	covered := make(map[string]bool, len(list))
	for _, t := range list {
		covered[orgdate.Inner(t.Date)] = true
	}
	for _, day := range orgdate.Window(today, numDays) {
		if covered[orgdate.Inner(day)] {
			continue
		}
		p, err := outline.NewPlaceholder(day, today)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}

	sort.SliceStable(list, func(i, j int) bool {
		ki, kj := orgdate.Inner(list[i].Date), orgdate.Inner(list[j].Date)
		if ki != kj {
			return ki < kj
		}
		return list[i].Days < list[j].Days
	})

	for i := range list {
		label, err := orgdate.DayName(list[i].Date)
		if err != nil {
			return nil, fmt.Errorf("agenda label: %w", err)
		}
		list[i].Date = label
	}
	return list, nil
}

// Countdown formats the annotation attached to repeated and overdue
// deadlines, e.g. "In  3 d.:" for width 2.
func Countdown(days, width int) string {
	return fmt.Sprintf("In %*d d.:", width, days)
}

// countdownWidth is the widest printed day count in the batch.
func countdownWidth(tasks []outline.Task) int {
	width := 1
	for _, t := range tasks {
		if n := len(strconv.Itoa(t.Days)); n > width {
			width = n
		}
	}
	return width
}

// SortByDays orders tasks by days until due, keeping file order for ties.
// Dates are reduced to their bracket-free form.
func SortByDays(tasks []outline.Task) []outline.Task {
	list := outline.CloneTasks(tasks)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Days < list[j].Days
	})
	for i := range list {
		list[i].Date = orgdate.Inner(list[i].Date)
	}
	return list
}

// SuppressRepeatedDates blanks each date equal to the last date shown above
// it, so consecutive rows for one day share a single label.
func SuppressRepeatedDates(tasks []outline.Task) []outline.Task {
	list := outline.CloneTasks(tasks)
	last := ""
	for i := range list {
		if list[i].Date == "" {
			continue
		}
		if list[i].Date == last {
			list[i].Date = ""
			continue
		}
		last = list[i].Date
	}
	return list
}
