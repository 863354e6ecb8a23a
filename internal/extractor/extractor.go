// Package extractor turns free-form workout transcripts into structured
// activity fields using a generative model. The model is asked for a strict
// JSON document; decoding is tolerant of the fenced or loosely typed output
// models tend to produce.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrNoWorkout is returned when the transcript contains no recognizable
// workout or exercise information.
var ErrNoWorkout = errors.New("transcript contains no workout")

// ParsedActivity holds the structured fields extracted from a transcript.
// Date is formatted yyyy/MM/dd; relative phrases such as "yesterday" are
// resolved against the reference date supplied to Parse.
type ParsedActivity struct {
	ExerciseType    string  `json:"exerciseType"`
	DurationMinutes float64 `json:"duration"`
	Description     string  `json:"description"`
	Date            string  `json:"date"`
}

// Parser extracts structured workout data from a transcript. The reference
// time anchors relative date phrases in the transcript.
type Parser interface {
	Parse(ctx context.Context, transcript string, ref time.Time) (*ParsedActivity, error)
}

const promptDate = "2006/01/02"

// knownTypes maps lowercase model output to the canonical exercise types.
// Anything outside the list collapses to Other.
var knownTypes = map[string]string{
	"running":  "Running",
	"cycling":  "Cycling",
	"swimming": "Swimming",
	"gym":      "Gym",
	"other":    "Other",
}

func buildPrompt(transcript string, ref time.Time) string {
	return fmt.Sprintf(`You are an expert workout data extraction tool. Analyze the following text and only extract structured workout data in JSON format.
If the text does not contain any recognizable workout or exercise information, you MUST return an empty JSON object, i.e., {}.

Today's date is %s.

Return a JSON object with exactly these fields:
- "exerciseType": the type of activity from the list ["Running", "Cycling", "Swimming", "Gym", "Other"]. If the activity is not one of the first four (for example "Yoga", "Walking", "Football", "Stretching", "Pilates", "Cricket"), return "Other".
- "duration": the time spent on the exercise in minutes, as a plain number. For "30mins running" the value is 30. Do not include units. Convert mixed units to minutes, e.g. "4mins 10seconds" becomes 4.17.
- "description": short summary of anything mentioned other than duration, activity or date, such as intensity, location or time of day.
- "date": the date the exercise was performed in yyyy/MM/dd format. Resolve relative terms ("yesterday", "today", "last week") against today's date.

Extract structured workout data in JSON from this text:
%s`, ref.Format(promptDate), transcript)
}

// decodeResponse parses the raw model output into a ParsedActivity. It
// strips markdown code fences, accepts duration as either a number or a
// numeric string, and canonicalizes the exercise type.
func decodeResponse(raw string) (*ParsedActivity, error) {
	doc := stripFences(raw)
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("model returned invalid JSON: %q", truncate(raw, 120))
	}

	exerciseType := strings.TrimSpace(gjson.Get(doc, "exerciseType").Str)
	if exerciseType == "" {
		return nil, ErrNoWorkout
	}
	canonical, ok := knownTypes[strings.ToLower(exerciseType)]
	if !ok {
		canonical = "Other"
	}

	duration := gjson.Get(doc, "duration").Float()
	if duration < 0 {
		return nil, fmt.Errorf("model returned negative duration %v", duration)
	}

	return &ParsedActivity{
		ExerciseType:    canonical,
		DurationMinutes: duration,
		Description:     strings.TrimSpace(gjson.Get(doc, "description").Str),
		Date:            strings.TrimSpace(gjson.Get(doc, "date").Str),
	}, nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag, leaving the enclosed document.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
