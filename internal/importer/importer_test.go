package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"
	"github.com/stretchr/testify/require"
)

func encodeActivityFile(t *testing.T, sessions ...*mesgdef.Session) []byte {
	t.Helper()

	start := time.Date(2025, time.August, 20, 7, 30, 0, 0, time.UTC)
	if len(sessions) > 0 && !sessions[0].StartTime.IsZero() {
		start = sessions[0].StartTime
	}

	fit := &proto.FIT{Messages: []proto.Message{}}
	fileId := mesgdef.NewFileId(nil).
		SetType(typedef.FileActivity).
		SetManufacturer(typedef.ManufacturerDevelopment).
		SetProduct(1).
		SetTimeCreated(start)
	fit.Messages = append(fit.Messages, fileId.ToMesg(nil))
	for _, session := range sessions {
		fit.Messages = append(fit.Messages, session.ToMesg(nil))
	}

	var buf bytes.Buffer
	require.NoError(t, encoder.New(&buf).Encode(fit))
	return buf.Bytes()
}

func sessionMessage(sport typedef.Sport, start time.Time, elapsed time.Duration) *mesgdef.Session {
	return mesgdef.NewSession(nil).
		SetTimestamp(start).
		SetStartTime(start).
		SetSport(sport).
		SetTotalElapsedTime(uint32(elapsed.Milliseconds()))
}

func TestDecodeSessionFile(t *testing.T) {
	start := time.Date(2025, time.August, 20, 7, 30, 0, 0, time.UTC)
	data := encodeActivityFile(t, sessionMessage(typedef.SportRunning, start, 45*time.Minute))

	summary, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, "Running", summary.ExerciseType)
	require.InDelta(t, 45.0, summary.DurationMinutes, 1e-9)
	require.True(t, summary.Date.Equal(start), "got %v", summary.Date)
	require.Equal(t, "Morning Run (FIT import)", summary.Description)
}

func TestDecodeSportMapping(t *testing.T) {
	cases := map[typedef.Sport]string{
		typedef.SportCycling:          "Cycling",
		typedef.SportSwimming:         "Swimming",
		typedef.SportTraining:         "Gym",
		typedef.SportFitnessEquipment: "Gym",
		typedef.SportSoccer:           "Other",
	}
	start := time.Date(2025, time.August, 20, 18, 0, 0, 0, time.UTC)
	for sport, want := range cases {
		data := encodeActivityFile(t, sessionMessage(sport, start, 30*time.Minute))

		summary, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, want, summary.ExerciseType, "sport %v", sport)
	}
}

func TestDecodeFirstSessionWins(t *testing.T) {
	start := time.Date(2025, time.August, 20, 7, 30, 0, 0, time.UTC)
	data := encodeActivityFile(t,
		sessionMessage(typedef.SportRunning, start, 30*time.Minute),
		sessionMessage(typedef.SportCycling, start.Add(time.Hour), 60*time.Minute),
	)

	summary, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, "Running", summary.ExerciseType)
	require.InDelta(t, 30.0, summary.DurationMinutes, 1e-9)
}

func TestDecodeEmptyData(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
}

func TestDecodeWithoutSession(t *testing.T) {
	data := encodeActivityFile(t)

	_, err := Decode(data)
	require.ErrorContains(t, err, "no session found")
}

func TestDecodeGarbageData(t *testing.T) {
	_, err := Decode([]byte("not a fit file at all"))
	require.Error(t, err)
}
