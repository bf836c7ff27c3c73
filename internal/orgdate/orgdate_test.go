package orgdate

import (
	"errors"
	"testing"
	"time"
)

var fixedToday = time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"today", "<2024-01-08 Mon>", 0},
		{"future", "<2024-01-10 Wed>", 2},
		{"past", "<2024-01-01 Mon>", -7},
		{"inactive brackets", "[2024-01-09 Tue]", 1},
		{"across month", "<2024-02-01 Thu>", 24},
		{"across year", "<2023-12-31 Sun>", -8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysUntil(tt.token, fixedToday)
			if err != nil {
				t.Fatalf("DaysUntil(%q) error: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("DaysUntil(%q): got %d, want %d", tt.token, got, tt.want)
			}
		})
	}
}

func TestDaysUntilIgnoresClockTime(t *testing.T) {
	late := time.Date(2024, time.January, 8, 23, 59, 0, 0, time.Local)
	got, err := DaysUntil("<2024-01-09 Tue>", late)
	if err != nil {
		t.Fatalf("DaysUntil error: %v", err)
	}
	if got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestDaysUntilInvalidToken(t *testing.T) {
	for _, token := range []string{"<2024-13-01 Mon>", "<tomorrow>", ""} {
		_, err := DaysUntil(token, fixedToday)
		if !errors.Is(err, ErrDateToken) {
			t.Errorf("DaysUntil(%q): expected ErrDateToken, got %v", token, err)
		}
	}
}

func TestDayName(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"<2024-01-08 Mon>", "Monday    08 Jan"},
		{"<2024-01-10 Wed>", "Wednesday 10 Jan"},
		{"[2024-03-02 Sat]", "Saturday  02 Mar"},
	}
	for _, tt := range tests {
		got, err := DayName(tt.token)
		if err != nil {
			t.Fatalf("DayName(%q) error: %v", tt.token, err)
		}
		if got != tt.want {
			t.Errorf("DayName(%q): got %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestTokenAndWindow(t *testing.T) {
	if got := Token(fixedToday); got != "<2024-01-08 Mon>" {
		t.Errorf("Token: got %q", got)
	}

	window := Window(fixedToday, 3)
	want := []string{"<2024-01-08 Mon>", "<2024-01-09 Tue>", "<2024-01-10 Wed>"}
	if len(window) != len(want) {
		t.Fatalf("Window length: got %d, want %d", len(window), len(want))
	}
	for i := range want {
		if window[i] != want[i] {
			t.Errorf("Window[%d]: got %q, want %q", i, window[i], want[i])
		}
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2024-01-08")
	if err != nil {
		t.Fatalf("ParseDay error: %v", err)
	}
	if !day.Equal(fixedToday) {
		t.Errorf("ParseDay: got %v, want %v", day, fixedToday)
	}
	if _, err := ParseDay("08/01/2024"); err == nil {
		t.Error("expected error for malformed day")
	}
}
