package main

import (
	"sort"
	"time"
)

// DayIndex is the deduplicated, ascending set of calendar days (in one
// display timezone) that contain at least one event. It is rebuilt
// wholesale on every load, never patched incrementally.
type DayIndex struct {
	loc       *time.Location
	days      []time.Time // midnights in loc, strictly increasing
	positions map[int]int // packed day key -> index into days
}

// dayKey packs a calendar day into a single sortable integer.
func dayKey(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Year()*10000 + int(local.Month())*100 + local.Day()
}

func dayFromKey(key int, loc *time.Location) time.Time {
	return time.Date(key/10000, time.Month(key/100%100), key%100, 0, 0, 0, 0, loc)
}

// startOfDay truncates t to midnight in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// BuildDayIndex derives each event's local calendar day, dedupes via the
// packed keys and sorts ascending. Input order does not matter; the input
// is already filtered to valid-start events.
func BuildDayIndex(events []Event, loc *time.Location) *DayIndex {
	if loc == nil {
		loc = time.Local
	}

	seen := make(map[int]struct{})
	for _, ev := range events {
		seen[dayKey(ev.Start, loc)] = struct{}{}
	}

	keys := make([]int, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	idx := &DayIndex{
		loc:       loc,
		days:      make([]time.Time, 0, len(keys)),
		positions: make(map[int]int, len(keys)),
	}
	for i, k := range keys {
		idx.days = append(idx.days, dayFromKey(k, loc))
		idx.positions[k] = i
	}
	return idx
}

// Len returns the number of distinct days.
func (d *DayIndex) Len() int { return len(d.days) }

// Days returns the ascending day sequence. Callers must not mutate it.
func (d *DayIndex) Days() []time.Time { return d.days }

// At returns the day at position i.
func (d *DayIndex) At(i int) time.Time { return d.days[i] }

// Contains reports whether any event falls on the given day.
func (d *DayIndex) Contains(day time.Time) bool {
	_, ok := d.positions[dayKey(day, d.loc)]
	return ok
}

// IndexOf returns the position of the given day, if present.
func (d *DayIndex) IndexOf(day time.Time) (int, bool) {
	i, ok := d.positions[dayKey(day, d.loc)]
	return i, ok
}

// Location returns the timezone days are derived in.
func (d *DayIndex) Location() *time.Location { return d.loc }

// EventsForDay filters events whose start falls within
// [startOfDay(day), startOfDay(day)+1d), preserving start order. The input
// is the session's already-sorted event list, so no re-sort is needed.
func EventsForDay(events []Event, day time.Time, loc *time.Location) []Event {
	if loc == nil {
		loc = time.Local
	}
	dayStart := startOfDay(day, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	matched := []Event{}
	for _, ev := range events {
		if !ev.Start.Before(dayStart) && ev.Start.Before(dayEnd) {
			matched = append(matched, ev)
		}
	}
	return matched
}
