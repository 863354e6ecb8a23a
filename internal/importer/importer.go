// Package importer reads workout summaries out of Garmin FIT activity files.
package importer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
)

// Summary is the workout-level view of a FIT activity file. Multi-session
// files are summarized from the first session message.
type Summary struct {
	ExerciseType    string
	DurationMinutes float64
	Date            time.Time
	Description     string
}

// Decode parses FIT data and returns the summary of its first session.
func Decode(data []byte) (*Summary, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty FIT data")
	}

	fitDec := decoder.New(bytes.NewReader(data))

	var fileCreated time.Time
	var session *mesgdef.Session

	for fitDec.Next() {
		fitData, err := fitDec.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIT file: %w", err)
		}

		for _, msg := range fitData.Messages {
			switch msg.Num {
			case typedef.MesgNumFileId:
				fileId := mesgdef.NewFileId(&msg)
				if fileCreated.IsZero() && !fileId.TimeCreated.IsZero() {
					fileCreated = fileId.TimeCreated.UTC()
				}
			case typedef.MesgNumSession:
				if session == nil {
					session = mesgdef.NewSession(&msg)
				}
			}
		}
	}

	if session == nil {
		return nil, fmt.Errorf("no session found in FIT file")
	}

	start := session.StartTime.UTC()
	if session.StartTime.IsZero() {
		start = fileCreated
	}
	if start.IsZero() {
		return nil, fmt.Errorf("FIT session has no start time")
	}

	var minutes float64
	if session.TotalElapsedTime != 0xFFFFFFFF { // 0xFFFFFFFF is invalid
		minutes = float64(session.TotalElapsedTime) / 1000 / 60
	}

	exerciseType := mapSport(session.Sport)

	return &Summary{
		ExerciseType:    exerciseType,
		DurationMinutes: minutes,
		Date:            start,
		Description:     describe(exerciseType, start),
	}, nil
}

func mapSport(sport typedef.Sport) string {
	switch sport {
	case typedef.SportRunning:
		return "Running"
	case typedef.SportCycling:
		return "Cycling"
	case typedef.SportSwimming:
		return "Swimming"
	case typedef.SportTraining, typedef.SportFitnessEquipment:
		return "Gym"
	default:
		return "Other"
	}
}

func describe(exerciseType string, start time.Time) string {
	hour := start.Hour()
	var timeOfDay string
	switch {
	case hour < 12:
		timeOfDay = "Morning"
	case hour < 17:
		timeOfDay = "Afternoon"
	case hour < 21:
		timeOfDay = "Evening"
	default:
		timeOfDay = "Night"
	}

	var label string
	switch exerciseType {
	case "Running":
		label = "Run"
	case "Cycling":
		label = "Ride"
	case "Swimming":
		label = "Swim"
	case "Gym":
		label = "Workout"
	default:
		label = "Activity"
	}

	return fmt.Sprintf("%s %s (FIT import)", timeOfDay, label)
}
