// Package orgdate converts org date tokens such as "<2024-01-10 Wed>" into
// day offsets and display labels.
//
// Every function that depends on the current day takes it as an argument.
// Callers resolve "today" once per run with Today and thread it through.
package orgdate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the date layout inside the brackets of a token.
const Layout = "2006-01-02 Mon"

// DayLayout is the layout accepted for explicit day overrides.
const DayLayout = "2006-01-02"

// ErrDateToken is returned when a token does not follow the date layout.
var ErrDateToken = errors.New("invalid date token")

// Today returns the civil date of now as midnight UTC. Day arithmetic is done
// in UTC so daylight saving shifts never produce fractional days.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a civil date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// Inner strips the surrounding brackets of a token, active or inactive.
func Inner(token string) string {
	return strings.Trim(strings.TrimSpace(token), "<>[]")
}

// Parse parses a bracketed or bare date token.
func Parse(token string) (time.Time, error) {
	t, err := time.Parse(Layout, Inner(token))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrDateToken, token, err)
	}
	return t, nil
}

// Token formats a civil date as an active token, e.g. "<2024-01-08 Mon>".
func Token(day time.Time) string {
	return "<" + day.Format(Layout) + ">"
}

// DaysUntil returns the signed number of whole days between today and the
// token's date. Negative means overdue.
func DaysUntil(token string, today time.Time) (int, error) {
	due, err := Parse(token)
	if err != nil {
		return 0, err
	}
	return int(due.Sub(Today(today)).Hours() / 24), nil
}

// DayName renders a token as the full weekday padded to ten columns followed
// by the day of month and abbreviated month, e.g. "Monday    08 Jan".
func DayName(token string) (string, error) {
	t, err := Parse(token)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%-10s%s", t.Format("Monday"), t.Format("02 Jan")), nil
}

// Window returns the tokens for n consecutive days starting at today.
func Window(today time.Time, n int) []string {
	start := Today(today)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Token(start.AddDate(0, 0, i)))
	}
	return out
}
