package main

import (
	"encoding/json"
	"fmt"
)

// Raw location-history export: a locations array of individual GPS fixes.
// Timestamps appear as millisecond-epoch strings in old dumps and ISO
// strings in newer ones; coordinates are fixed-point E7. These files
// commonly run to hundreds of thousands of elements - no capping happens
// here, volume limiting is a rendering concern.

type rawLocation struct {
	TimestampMs epochMillis `json:"timestampMs"`
	Timestamp   string      `json:"timestamp"`
	LatitudeE7  coordE7     `json:"latitudeE7"`
	LongitudeE7 coordE7     `json:"longitudeE7"`
	Accuracy    *float64    `json:"accuracy"`
}

const noAccuracy = "no accuracy data"

// parseRawLocations extracts one RawPoint event per element. Elements
// missing a valid timestamp or either coordinate are dropped.
func parseRawLocations(raw json.RawMessage) []Event {
	events := []Event{}

	for _, element := range splitElements(raw) {
		var loc rawLocation
		if err := json.Unmarshal(element, &loc); err != nil {
			continue
		}

		start, ok := decodeDualTimestamp(loc.Timestamp, loc.TimestampMs)
		if !ok {
			continue
		}
		if !loc.LatitudeE7.ok || !loc.LongitudeE7.ok {
			continue
		}

		subtitle := noAccuracy
		if loc.Accuracy != nil {
			subtitle = fmt.Sprintf("accuracy ±%.0f m", *loc.Accuracy)
		}

		events = append(events, Event{
			Kind:     KindRawPoint,
			Start:    start,
			Title:    "GPS fix",
			Subtitle: subtitle,
			Icon:     IconPoint,
			Point:    &LatLng{Lat: loc.LatitudeE7.deg, Lon: loc.LongitudeE7.deg},
		})
	}

	return events
}
