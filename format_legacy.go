package main

import "encoding/json"

// Legacy Takeout export: a timelineObjects array whose elements carry at
// most one of activitySegment or placeVisit. Timestamps are dual-encoded
// (ISO strings in newer dumps, millisecond-epoch strings in older ones)
// and coordinates are fixed-point E7 integers.

type legacyObject struct {
	ActivitySegment *legacyActivity `json:"activitySegment"`
	PlaceVisit      *legacyVisit    `json:"placeVisit"`
}

type legacyDuration struct {
	StartTimestamp   string      `json:"startTimestamp"`
	EndTimestamp     string      `json:"endTimestamp"`
	StartTimestampMs epochMillis `json:"startTimestampMs"`
	EndTimestampMs   epochMillis `json:"endTimestampMs"`
}

type legacyLatLng struct {
	LatitudeE7  coordE7 `json:"latitudeE7"`
	LongitudeE7 coordE7 `json:"longitudeE7"`
}

func (l legacyLatLng) point() *LatLng {
	if !l.LatitudeE7.ok || !l.LongitudeE7.ok {
		return nil
	}
	return &LatLng{Lat: l.LatitudeE7.deg, Lon: l.LongitudeE7.deg}
}

type legacyWaypoint struct {
	LatE7 coordE7 `json:"latE7"`
	LngE7 coordE7 `json:"lngE7"`
}

type legacyActivity struct {
	Duration      legacyDuration `json:"duration"`
	ActivityType  string         `json:"activityType"`
	Distance      *float64       `json:"distance"`
	StartLocation legacyLatLng   `json:"startLocation"`
	EndLocation   legacyLatLng   `json:"endLocation"`
	WaypointPath  struct {
		Waypoints []legacyWaypoint `json:"waypoints"`
	} `json:"waypointPath"`
}

type legacyVisit struct {
	Duration legacyDuration `json:"duration"`
	Location struct {
		LatitudeE7  coordE7 `json:"latitudeE7"`
		LongitudeE7 coordE7 `json:"longitudeE7"`
		Name        string  `json:"name"`
		Address     string  `json:"address"`
	} `json:"location"`
}

const (
	unknownPlace   = "unknown place"
	unknownAddress = "unknown address"
)

// parseLegacy extracts canonical events from a timelineObjects array.
// Records with no decodable start are dropped silently.
func parseLegacy(raw json.RawMessage) []Event {
	events := []Event{}

	for _, element := range splitElements(raw) {
		var obj legacyObject
		if err := json.Unmarshal(element, &obj); err != nil {
			continue
		}

		if obj.ActivitySegment != nil {
			if ev, ok := legacyMovementEvent(obj.ActivitySegment); ok {
				events = append(events, ev)
			}
		}
		if obj.PlaceVisit != nil {
			if ev, ok := legacyVisitEvent(obj.PlaceVisit); ok {
				events = append(events, ev)
			}
		}
	}

	return events
}

func legacyMovementEvent(seg *legacyActivity) (Event, bool) {
	start, ok := decodeDualTimestamp(seg.Duration.StartTimestamp, seg.Duration.StartTimestampMs)
	if !ok {
		return Event{}, false
	}

	ev := Event{
		Kind:           KindMovement,
		Start:          start,
		Subtitle:       distanceSubtitle(seg.Distance),
		Icon:           IconForMovementType(seg.ActivityType),
		MovementType:   seg.ActivityType,
		DistanceMeters: seg.Distance,
	}
	if end, ok := decodeDualTimestamp(seg.Duration.EndTimestamp, seg.Duration.EndTimestampMs); ok {
		ev.End = &end
	}

	ev.Title = titleCaseType(seg.ActivityType)
	if ev.Title == "" {
		ev.Title = "Movement"
	}

	path := []LatLng{}
	for _, wp := range seg.WaypointPath.Waypoints {
		if wp.LatE7.ok && wp.LngE7.ok {
			path = append(path, LatLng{Lat: wp.LatE7.deg, Lon: wp.LngE7.deg})
		}
	}
	if len(path) == 0 {
		// No waypoints: fall back to whatever endpoint coordinates decode.
		if p := seg.StartLocation.point(); p != nil {
			path = append(path, *p)
		}
		if p := seg.EndLocation.point(); p != nil {
			path = append(path, *p)
		}
	}
	ev.Path = path

	return ev, true
}

func legacyVisitEvent(visit *legacyVisit) (Event, bool) {
	start, ok := decodeDualTimestamp(visit.Duration.StartTimestamp, visit.Duration.StartTimestampMs)
	if !ok {
		return Event{}, false
	}

	ev := Event{
		Kind:     KindVisit,
		Start:    start,
		Title:    visit.Location.Name,
		Subtitle: visit.Location.Address,
		Icon:     IconPlace,
	}
	if end, ok := decodeDualTimestamp(visit.Duration.EndTimestamp, visit.Duration.EndTimestampMs); ok {
		ev.End = &end
	}
	if ev.Title == "" {
		ev.Title = unknownPlace
	}
	if ev.Subtitle == "" {
		ev.Subtitle = unknownAddress
	}
	if visit.Location.LatitudeE7.ok && visit.Location.LongitudeE7.ok {
		ev.Point = &LatLng{Lat: visit.Location.LatitudeE7.deg, Lon: visit.Location.LongitudeE7.deg}
	}

	return ev, true
}
