package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Window is the half-open [Start, End) interval covering one calendar month.
type Window struct {
	Start time.Time
	End   time.Time
}

var monthPattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)

// ErrInvalidMonthFormat is returned when a month designator cannot be split
// into a 4-digit year and a 1-2 digit month.
type ErrInvalidMonthFormat struct {
	Input string
}

func (e *ErrInvalidMonthFormat) Error() string {
	return fmt.Sprintf("invalid month format %q: expected YYYY-MM", e.Input)
}

// ResolveMonth turns a "YYYY-MM" designator into the month's window. Start is
// midnight on day 1 and End is midnight on day 1 of the following month, so
// the day count follows the calendar rather than a hardcoded month length.
func ResolveMonth(month string) (Window, error) {
	m := monthPattern.FindStringSubmatch(month)
	if m == nil {
		return Window{}, &ErrInvalidMonthFormat{Input: month}
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return Window{}, &ErrInvalidMonthFormat{Input: month}
	}
	mon, err := strconv.Atoi(m[2])
	if err != nil || mon < 1 || mon > 12 {
		return Window{}, &ErrInvalidMonthFormat{Input: month}
	}

	start := time.Date(year, time.Month(mon), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return Window{Start: start, End: end}, nil
}

// Days returns the number of calendar days the window spans.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start) / (24 * time.Hour))
}

// Contains reports whether t falls inside the half-open interval.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
