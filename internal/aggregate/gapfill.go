package aggregate

import "github.com/manjuvnair16/MLA-app-group3/internal/timewindow"

// TrendPoint is one day of a dense trend series.
type TrendPoint struct {
	Name          string  `json:"name"` // canonical weekday label
	Date          string  `json:"date"` // YYYY-MM-DD
	TotalDuration float64 `json:"totalDuration"`
}

// FillDays expands sparse per-day totals into a dense chronological series,
// one point per day of the window. Days without records carry a zero total.
func FillDays(totals map[string]float64, days []timewindow.Day) []TrendPoint {
	out := make([]TrendPoint, 0, len(days))
	for _, d := range days {
		out = append(out, TrendPoint{
			Name:          d.Name,
			Date:          d.Date,
			TotalDuration: totals[d.Date],
		})
	}
	return out
}
