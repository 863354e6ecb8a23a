// Package timewindow resolves the relative and explicit date windows used by
// the analytics endpoints. All boundary arithmetic happens in UTC, the
// timezone records are stored in.
package timewindow

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow reports an unparseable date or an inverted range.
var ErrInvalidWindow = errors.New("invalid window")

// DayFormat is the calendar-day label format used across the service.
const DayFormat = "2006-01-02"

// weekdayNames maps time.Weekday onto the canonical labels used in trend
// output. Indexed by Go's numbering (Sunday = 0), never by any store-native
// day-of-week numbering.
var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Day is one calendar day of a window.
type Day struct {
	Date string // YYYY-MM-DD
	Name string // canonical weekday label
}

// Window is a resolved half-open interval [Start, End) over record dates,
// plus the ordered day sequence for day-bucketed views.
type Window struct {
	Start time.Time
	End   time.Time // exclusive
	Days  []Day
}

// DayName returns the canonical weekday label for t.
func DayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// Midnight truncates t to the start of its UTC calendar day.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// LastNDays resolves the trailing n-day window ending at ref. The window
// covers the n calendar days up to and including ref's partial day, so the
// exclusive End is the midnight after ref.
func LastNDays(n int, ref time.Time) Window {
	last := Midnight(ref)
	start := last.AddDate(0, 0, -(n - 1))
	return Window{
		Start: start,
		End:   last.AddDate(0, 0, 1),
		Days:  daySequence(start, n),
	}
}

// CurrentWeek resolves the window from the most recent Monday midnight (UTC)
// up to, but not including, ref.
func CurrentWeek(ref time.Time) Window {
	start := StartOfWeek(ref)
	n := int(Midnight(ref).Sub(start).Hours())/24 + 1
	return Window{
		Start: start,
		End:   ref.UTC(),
		Days:  daySequence(start, n),
	}
}

// StartOfWeek returns the midnight of the Monday on or before t. Weeks start
// on Monday per ISO convention.
func StartOfWeek(t time.Time) time.Time {
	m := Midnight(t)
	back := (int(m.Weekday()) + 6) % 7
	return m.AddDate(0, 0, -back)
}

// ExplicitRange resolves an inclusive YYYY-MM-DD date pair into a window
// covering both full days.
func ExplicitRange(startDate, endDate string) (Window, error) {
	start, err := time.ParseInLocation(DayFormat, startDate, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start date %q", ErrInvalidWindow, startDate)
	}
	end, err := time.ParseInLocation(DayFormat, endDate, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end date %q", ErrInvalidWindow, endDate)
	}
	if end.Before(start) {
		return Window{}, fmt.Errorf("%w: end %s precedes start %s", ErrInvalidWindow, endDate, startDate)
	}
	n := int(end.Sub(start).Hours())/24 + 1
	return Window{
		Start: start,
		End:   end.AddDate(0, 0, 1),
		Days:  daySequence(start, n),
	}, nil
}

func daySequence(start time.Time, n int) []Day {
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, Day{Date: d.Format(DayFormat), Name: DayName(d)})
	}
	return days
}
