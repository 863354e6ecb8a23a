package firestore

import (
	"time"

	"github.com/manjuvnair16/MLA-app-group3/internal/domain"
)

// Document field names follow the collection's original schema, so data
// recorded before this service reads back without migration.
func activityToDoc(a *domain.Activity) map[string]interface{} {
	m := map[string]interface{}{
		"username":     a.Username,
		"exerciseType": a.ExerciseType,
		"duration":     a.DurationMinutes,
		"description":  a.Description,
		"date":         a.Date,
	}
	if !a.CreatedAt.IsZero() {
		m["createdAt"] = a.CreatedAt
	}
	return m
}

func activityFromDoc(id string, m map[string]interface{}) domain.Activity {
	return domain.Activity{
		ID:              id,
		Username:        getString(m, "username"),
		ExerciseType:    getString(m, "exerciseType"),
		DurationMinutes: getFloat64(m, "duration"),
		Description:     getString(m, "description"),
		Date:            getTime(m, "date"),
		CreatedAt:       getTime(m, "createdAt"),
	}
}

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get a number from map (Firestore hands back int64 or float64)
func getFloat64(m map[string]interface{}, key string) float64 {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int64:
			return float64(n)
		case int:
			return float64(n)
		}
	}
	return 0
}

// Helper to safely get time from map
func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t.UTC()
		}
	}
	return time.Time{}
}
