package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayNameCanonicalTable(t *testing.T) {
	cases := []struct {
		day  time.Time
		want string
	}{
		{date(2023, time.January, 1), "Sun"},
		{date(2024, time.January, 1), "Mon"},
		{date(2025, time.January, 1), "Wed"},
		{date(2024, time.February, 29), "Thu"},
		{date(2025, time.August, 18), "Mon"},
		{date(2025, time.August, 23), "Sat"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, DayName(tc.day), "weekday of %s", tc.day.Format(DayFormat))
	}
}

func TestLastNDaysWindow(t *testing.T) {
	ref := time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC) // a Monday afternoon

	w := LastNDays(7, ref)

	require.Equal(t, date(2025, time.March, 4), w.Start)
	require.Equal(t, date(2025, time.March, 11), w.End)
	require.Len(t, w.Days, 7)
	require.Equal(t, Day{Date: "2025-03-04", Name: "Tue"}, w.Days[0])
	require.Equal(t, Day{Date: "2025-03-10", Name: "Mon"}, w.Days[6])
	for i := 1; i < len(w.Days); i++ {
		require.Less(t, w.Days[i-1].Date, w.Days[i].Date, "days must ascend")
	}
}

func TestLastNDaysIncludesPartialDay(t *testing.T) {
	ref := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC) // exactly midnight

	w := LastNDays(7, ref)

	today := Midnight(ref)
	require.False(t, today.Before(w.Start))
	require.True(t, today.Before(w.End), "a record dated the reference day must fall inside the window")
}

func TestCurrentWeekStartsMonday(t *testing.T) {
	wed := time.Date(2025, time.August, 20, 10, 0, 0, 0, time.UTC)
	w := CurrentWeek(wed)
	require.Equal(t, date(2025, time.August, 18), w.Start)
	require.Equal(t, wed, w.End)
	require.Equal(t, []Day{
		{Date: "2025-08-18", Name: "Mon"},
		{Date: "2025-08-19", Name: "Tue"},
		{Date: "2025-08-20", Name: "Wed"},
	}, w.Days)

	sun := time.Date(2025, time.August, 17, 23, 59, 59, 0, time.UTC)
	w = CurrentWeek(sun)
	require.Equal(t, date(2025, time.August, 11), w.Start, "Sunday still belongs to the week begun the previous Monday")
	require.Len(t, w.Days, 7)

	mon := date(2025, time.August, 18)
	w = CurrentWeek(mon)
	require.Equal(t, mon, w.Start)
	require.Equal(t, mon, w.End, "at Monday midnight the week has no elapsed span yet")
}

func TestCurrentWeekBoundary(t *testing.T) {
	ref := time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC)
	w := CurrentWeek(ref)

	monday := date(2025, time.August, 18)
	prevSunday := date(2025, time.August, 17)

	require.False(t, monday.Before(w.Start), "Monday of the current week is included")
	require.True(t, prevSunday.Before(w.Start), "previous Sunday is excluded")
}

func TestStartOfWeekAllWeekdays(t *testing.T) {
	monday := date(2025, time.August, 18)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i).Add(13 * time.Hour)
		require.Equal(t, monday, StartOfWeek(d), "start of week for %s", d.Format(DayFormat))
	}
}

func TestExplicitRangeSingleDay(t *testing.T) {
	w, err := ExplicitRange("2025-01-01", "2025-01-01")
	require.NoError(t, err)

	require.Equal(t, date(2025, time.January, 1), w.Start)
	require.Equal(t, date(2025, time.January, 2), w.End)
	require.Equal(t, []Day{{Date: "2025-01-01", Name: "Wed"}}, w.Days)

	onDay := date(2025, time.January, 1)
	nextDay := date(2025, time.January, 2)
	require.False(t, onDay.Before(w.Start))
	require.True(t, onDay.Before(w.End), "record dated the single day is inside")
	require.False(t, nextDay.Before(w.End), "record dated the next day is outside")
}

func TestExplicitRangeSpansDays(t *testing.T) {
	w, err := ExplicitRange("2025-08-18", "2025-08-23")
	require.NoError(t, err)
	require.Len(t, w.Days, 6)
	require.Equal(t, Day{Date: "2025-08-18", Name: "Mon"}, w.Days[0])
	require.Equal(t, Day{Date: "2025-08-23", Name: "Sat"}, w.Days[5])
}

func TestExplicitRangeInvalid(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"malformed start", "not-a-date", "2025-01-02"},
		{"malformed end", "2025-01-01", "01/02/2025"},
		{"inverted", "2025-01-02", "2025-01-01"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExplicitRange(tc.start, tc.end)
			require.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}
