package agenda

import (
	"reflect"
	"testing"
	"time"

	"github.com/nibzard/orgagenda/internal/outline"
)

var testToday = time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

func dates(tasks []outline.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Date
	}
	return out
}

func TestSynthesizeDeadlineOutsideWindow(t *testing.T) {
	tasks := []outline.Task{{
		State:      "TODO",
		Text:       "File report",
		Date:       "<2024-01-13 Sat>",
		Annotation: "Deadline:",
		Days:       5,
	}}

	rows, err := Synthesize(tasks, testToday, 3)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	want := []string{"Monday    08 Jan", "Tuesday   09 Jan", "Wednesday 10 Jan", "Saturday  13 Jan"}
	if got := dates(rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("dates: got %q, want %q", got, want)
	}
	placeholders := 0
	for _, r := range rows {
		if r.Placeholder {
			placeholders++
		}
		if r.Annotation != "" && r.Annotation != "Deadline:" {
			t.Errorf("unexpected countdown %q", r.Annotation)
		}
	}
	if placeholders != 3 {
		t.Errorf("expected 3 placeholders, got %d", placeholders)
	}
	if rows[0].Days != 0 || rows[2].Days != 2 {
		t.Errorf("placeholder days: got %d and %d", rows[0].Days, rows[2].Days)
	}
}

func TestSynthesizeRepeatsUpcomingDeadline(t *testing.T) {
	tasks := []outline.Task{{
		State:      "TODO",
		Text:       "Ship",
		Date:       "<2024-01-10 Wed>",
		Annotation: "Deadline:",
		Days:       2,
	}}

	rows, err := Synthesize(tasks, testToday, 7)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("expected 7 rows, got %d: %+v", len(rows), rows)
	}
	first := rows[0]
	if first.Placeholder || first.Text != "Ship" || first.Annotation != "In 2 d.:" {
		t.Errorf("expected countdown repeat under today, got %+v", first)
	}
	if first.Date != "Monday    08 Jan" {
		t.Errorf("repeat date: got %q", first.Date)
	}
	original := rows[2]
	if original.Text != "Ship" || original.Annotation != "Deadline:" || original.Date != "Wednesday 10 Jan" {
		t.Errorf("original deadline row changed: %+v", original)
	}
	if tasks[0].Date != "<2024-01-10 Wed>" || tasks[0].Annotation != "Deadline:" {
		t.Errorf("input was mutated: %+v", tasks[0])
	}
}

func TestSynthesizeOverdueDeadlineMovesToToday(t *testing.T) {
	tasks := []outline.Task{
		{State: "TODO", Text: "Late", Date: "<2024-01-05 Fri>", Annotation: "Deadline:", Days: -3},
		{State: "TODO", Text: "Old", Date: "<2024-01-06 Sat>", Days: -2},
		{State: "TODO", Text: "Soon", Date: "<2024-01-12 Fri>", Annotation: "Scheduled:", Days: 4},
	}

	rows, err := Synthesize(tasks, testToday, 2)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	var texts []string
	for _, r := range rows {
		texts = append(texts, r.Text)
	}
	wantTexts := []string{"Old", "Late", "", "Soon"}
	if !reflect.DeepEqual(texts, wantTexts) {
		t.Fatalf("order: got %q, want %q", texts, wantTexts)
	}
	late := rows[1]
	if late.Date != "Monday    08 Jan" || late.Annotation != "In -3 d.:" || late.Days != -3 {
		t.Errorf("overdue deadline: %+v", late)
	}
	if rows[0].Date != "Saturday  06 Jan" {
		t.Errorf("overdue non-deadline keeps its date, got %q", rows[0].Date)
	}
	if !rows[2].Placeholder || rows[2].Date != "Tuesday   09 Jan" {
		t.Errorf("expected placeholder for tomorrow, got %+v", rows[2])
	}
}

func TestSynthesizeCoversEveryDay(t *testing.T) {
	tasks := []outline.Task{
		{State: "TODO", Date: "<2024-01-09 Tue>", Days: 1},
		{State: "TODO", Date: "[2024-01-11 Thu]", Days: 3},
		{State: "TODO", Date: "<2024-01-11 Thu>", Annotation: "Deadline:", Days: 3},
	}
	for n := 1; n <= 10; n++ {
		rows, err := Synthesize(tasks, testToday, n)
		if err != nil {
			t.Fatalf("Synthesize(%d): %v", n, err)
		}
		seen := make(map[string]bool)
		for _, r := range rows {
			seen[r.Date] = true
		}
		if len(seen) < n {
			t.Errorf("window %d: only %d distinct days", n, len(seen))
		}
		originals := 0
		for _, r := range rows {
			if r.Date == "Tuesday   09 Jan" && !r.Placeholder {
				originals++
			}
		}
		if originals != 1 {
			t.Errorf("window %d: task without deadline appears %d times", n, originals)
		}
	}
}

func TestCountdown(t *testing.T) {
	tests := []struct {
		days, width int
		want        string
	}{
		{3, 1, "In 3 d.:"},
		{3, 2, "In  3 d.:"},
		{-12, 3, "In -12 d.:"},
	}
	for _, tt := range tests {
		if got := Countdown(tt.days, tt.width); got != tt.want {
			t.Errorf("Countdown(%d, %d) = %q, want %q", tt.days, tt.width, got, tt.want)
		}
	}
}

func TestSuppressRepeatedDates(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"blanks only the repeat", []string{"A", "A", "B"}, []string{"A", "", "B"}},
		{"folds over blanks", []string{"A", "", "A", "B", "B"}, []string{"A", "", "", "B", ""}},
		{"distinct labels", []string{"A", "B", "A"}, []string{"A", "B", "A"}},
		{"empty", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]outline.Task, len(tt.in))
			for i, d := range tt.in {
				in[i] = outline.Task{Date: d}
			}
			got := dates(SuppressRepeatedDates(in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			for i, d := range tt.in {
				if in[i].Date != d {
					t.Errorf("input %d mutated", i)
				}
			}
		})
	}
}

func TestSortByDays(t *testing.T) {
	tasks := []outline.Task{
		{Text: "b", Date: "<2024-01-10 Wed>", Days: 2},
		{Text: "a", Date: "[2024-01-06 Sat]", Days: -2},
		{Text: "c", Date: "<2024-01-10 Wed>", Days: 2},
	}
	got := SortByDays(tasks)
	var texts []string
	for _, task := range got {
		texts = append(texts, task.Text)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(texts, want) {
		t.Errorf("order: got %q, want %q", texts, want)
	}
	if want := []string{"2024-01-06 Sat", "2024-01-10 Wed", "2024-01-10 Wed"}; !reflect.DeepEqual(dates(got), want) {
		t.Errorf("dates: got %q, want %q", dates(got), want)
	}
}

func TestBuild(t *testing.T) {
	tasks := []outline.Task{{State: "TODO", Date: "<2024-01-09 Tue>", Days: 1}}

	if _, err := Build(tasks, Options{Today: testToday, Agenda: true, NumDays: 0}); err == nil {
		t.Error("expected error for empty agenda window")
	}

	r, err := Build(tasks, Options{Today: testToday, Agenda: true, NumDays: 2})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(r.Tasks) != 2 || !r.Tasks[0].Placeholder {
		t.Errorf("expected placeholder then task, got %+v", r.Tasks)
	}

	r, err = Build(nil, Options{Today: testToday})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !r.Empty() {
		t.Error("expected empty report")
	}
}
