package main

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(t time.Time) Event {
	return Event{Kind: KindRawPoint, Start: t, Title: "GPS fix"}
}

func TestBuildDayIndexDeterminism(t *testing.T) {
	utc := time.UTC
	days := []time.Time{
		time.Date(2023, 5, 1, 0, 0, 0, 0, utc),
		time.Date(2023, 5, 3, 0, 0, 0, 0, utc),
		time.Date(2023, 6, 15, 0, 0, 0, 0, utc),
		time.Date(2024, 1, 2, 0, 0, 0, 0, utc),
	}

	// Several events per day at assorted times of day.
	var events []Event
	for _, day := range days {
		for _, offset := range []time.Duration{0, 7 * time.Hour, 23*time.Hour + 59*time.Minute} {
			events = append(events, eventAt(day.Add(offset)))
		}
	}

	// Input order must not matter.
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]Event, len(events))
		copy(shuffled, events)
		rand.New(rand.NewSource(int64(trial))).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		idx := BuildDayIndex(shuffled, utc)
		require.Equal(t, len(days), idx.Len())
		for i, day := range days {
			assert.True(t, idx.At(i).Equal(day))
		}
		// Strictly increasing, no duplicates.
		for i := 1; i < idx.Len(); i++ {
			assert.True(t, idx.At(i-1).Before(idx.At(i)))
		}
	}
}

func TestBuildDayIndexEmpty(t *testing.T) {
	idx := BuildDayIndex(nil, time.UTC)
	assert.Equal(t, 0, idx.Len())
	assert.False(t, idx.Contains(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDayIndexMembership(t *testing.T) {
	utc := time.UTC
	idx := BuildDayIndex([]Event{
		eventAt(time.Date(2023, 5, 1, 10, 0, 0, 0, utc)),
		eventAt(time.Date(2023, 5, 3, 10, 0, 0, 0, utc)),
	}, utc)

	assert.True(t, idx.Contains(time.Date(2023, 5, 1, 0, 0, 0, 0, utc)))
	// Membership ignores the time of day.
	assert.True(t, idx.Contains(time.Date(2023, 5, 1, 18, 30, 0, 0, utc)))
	assert.False(t, idx.Contains(time.Date(2023, 5, 2, 0, 0, 0, 0, utc)))

	pos, ok := idx.IndexOf(time.Date(2023, 5, 3, 0, 0, 0, 0, utc))
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestDayIndexTimezoneDerivation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2023-05-01T22:00:00Z is already 2023-05-02 in Tokyo.
	idx := BuildDayIndex([]Event{
		eventAt(time.Date(2023, 5, 1, 22, 0, 0, 0, time.UTC)),
	}, tokyo)

	require.Equal(t, 1, idx.Len())
	assert.Equal(t, 2, idx.At(0).Day())
}

func TestEventsForDay(t *testing.T) {
	utc := time.UTC
	day := time.Date(2023, 5, 1, 0, 0, 0, 0, utc)

	events := []Event{
		eventAt(day.Add(-time.Second)),       // previous day
		eventAt(day),                         // midnight, included
		eventAt(day.Add(12 * time.Hour)),     // included
		eventAt(day.AddDate(0, 0, 1)),        // next midnight, excluded
		eventAt(day.Add(36 * time.Hour)),     // next day
	}

	matched := EventsForDay(events, day, utc)
	require.Len(t, matched, 2)
	assert.True(t, matched[0].Start.Equal(day))
	assert.True(t, matched[1].Start.Equal(day.Add(12*time.Hour)))

	// The day argument's own time of day is ignored.
	matched = EventsForDay(events, day.Add(15*time.Hour), utc)
	assert.Len(t, matched, 2)

	assert.Empty(t, EventsForDay(events, day.AddDate(0, 1, 0), utc))
}
