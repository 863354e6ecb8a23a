// Package aggregate computes duration summaries over activity records.
// Groupings preserve first-seen order rather than sorting, so output rows
// follow record arrival order.
package aggregate

// Record is the projection of an activity that summaries are computed from.
type Record struct {
	Username        string
	ExerciseType    string
	DurationMinutes float64
	Day             string // YYYY-MM-DD calendar day of the activity
}

// TypeTotal is the summed duration for one exercise type.
type TypeTotal struct {
	ExerciseType  string  `json:"exerciseType"`
	TotalDuration float64 `json:"totalDuration"`
}

// UserSummary groups per-type totals under one user.
type UserSummary struct {
	Username  string      `json:"username"`
	Exercises []TypeTotal `json:"exercises"`
}

// WeekSummary is the weekly rollup: per-type totals plus grand totals.
type WeekSummary struct {
	TotalDuration float64     `json:"totalDuration"`
	TotalTypes    int         `json:"totalTypes"`
	Exercises     []TypeTotal `json:"exercises"`
}

// ByUserAndType runs the two-stage rollup: durations are first summed per
// (username, exerciseType) pair, then the pair rows regroup under their user.
func ByUserAndType(records []Record) []UserSummary {
	type pair struct{ username, exerciseType string }

	sums := make(map[pair]float64)
	order := make([]pair, 0, len(records))
	for _, r := range records {
		k := pair{r.Username, r.ExerciseType}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] += r.DurationMinutes
	}

	index := make(map[string]int)
	out := make([]UserSummary, 0)
	for _, k := range order {
		i, seen := index[k.username]
		if !seen {
			i = len(out)
			index[k.username] = i
			out = append(out, UserSummary{Username: k.username, Exercises: []TypeTotal{}})
		}
		out[i].Exercises = append(out[i].Exercises, TypeTotal{
			ExerciseType:  k.exerciseType,
			TotalDuration: sums[k],
		})
	}
	return out
}

// ByType sums durations per exercise type.
func ByType(records []Record) []TypeTotal {
	sums := make(map[string]float64)
	order := make([]string, 0)
	for _, r := range records {
		if _, seen := sums[r.ExerciseType]; !seen {
			order = append(order, r.ExerciseType)
		}
		sums[r.ExerciseType] += r.DurationMinutes
	}

	out := make([]TypeTotal, 0, len(order))
	for _, exerciseType := range order {
		out = append(out, TypeTotal{ExerciseType: exerciseType, TotalDuration: sums[exerciseType]})
	}
	return out
}

// ByDay sums durations per calendar day.
func ByDay(records []Record) map[string]float64 {
	totals := make(map[string]float64, len(records))
	for _, r := range records {
		totals[r.Day] += r.DurationMinutes
	}
	return totals
}

// Summarize rolls grouped totals up into a week summary. Grand totals are
// computed from the group rows they accompany.
func Summarize(totals []TypeTotal) WeekSummary {
	if totals == nil {
		totals = []TypeTotal{}
	}
	summary := WeekSummary{TotalTypes: len(totals), Exercises: totals}
	for _, t := range totals {
		summary.TotalDuration += t.TotalDuration
	}
	return summary
}
