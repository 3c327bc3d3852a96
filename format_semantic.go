package main

import (
	"encoding/json"
	"strings"
	"time"
)

// Newer on-device Timeline export: a semanticSegments array whose elements
// carry a required ISO-8601 startTime plus either a visit or an activity
// sub-object. Coordinates are free-text ("12.34°, 56.78°") and the field
// names drifted between app versions, hence the fallback chains below.

type semanticSegment struct {
	StartTime    string              `json:"startTime"`
	EndTime      string              `json:"endTime"`
	Visit        *semanticVisit      `json:"visit"`
	Activity     *semanticActivity   `json:"activity"`
	TimelinePath []semanticPathPoint `json:"timelinePath"`
}

type semanticVisit struct {
	TopCandidate  *semanticPlace `json:"topCandidate"`
	PlaceLocation latLngText     `json:"placeLocation"`
}

type semanticPlace struct {
	Label         string     `json:"label"`
	Name          string     `json:"name"`
	SemanticType  string     `json:"semanticType"`
	Address       string     `json:"address"`
	FormattedAddr string     `json:"formattedAddress"`
	PlaceLocation latLngText `json:"placeLocation"`
}

type semanticActivity struct {
	TopCandidate *struct {
		Type string `json:"type"`
	} `json:"topCandidate"`
	ActivityType   string     `json:"activityType"`
	DistanceMeters *float64   `json:"distanceMeters"`
	Start          latLngText `json:"start"`
	End            latLngText `json:"end"`
}

type semanticPathPoint struct {
	Point latLngText `json:"point"`
}

// firstNonEmpty returns the first candidate that trims to a non-empty
// string. Fallback chains over renamed fields are kept as explicit ordered
// lists so the resolution order is visible and testable.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// parseSemantic extracts canonical events from a semanticSegments array.
// Elements without a valid startTime are skipped entirely; elements with
// neither a visit nor an activity are ignored.
func parseSemantic(raw json.RawMessage) []Event {
	events := []Event{}

	for _, element := range splitElements(raw) {
		var seg semanticSegment
		if err := json.Unmarshal(element, &seg); err != nil {
			continue
		}

		start, ok := decodeISOTime(seg.StartTime)
		if !ok {
			continue
		}
		var end *time.Time
		if t, ok := decodeISOTime(seg.EndTime); ok {
			end = &t
		}

		switch {
		case seg.Visit != nil:
			events = append(events, semanticVisitEvent(seg.Visit, start, end))
		case seg.Activity != nil:
			events = append(events, semanticMovementEvent(&seg, start, end))
		}
	}

	return events
}

func semanticVisitEvent(visit *semanticVisit, start time.Time, end *time.Time) Event {
	ev := Event{
		Kind:     KindVisit,
		Start:    start,
		End:      end,
		Icon:     IconPlace,
		Title:    unknownPlace,
		Subtitle: unknownAddress,
	}

	if cand := visit.TopCandidate; cand != nil {
		// Place label resolution order: label, name, semanticType. The first
		// two are user-facing text and pass through verbatim; semanticType
		// is an enum-like tag and gets the same casing as movement types.
		if label := firstNonEmpty(cand.Label, cand.Name); label != "" {
			ev.Title = label
		} else if tag := firstNonEmpty(cand.SemanticType); tag != "" {
			ev.Title = titleCaseType(tag)
		}
		if addr := firstNonEmpty(cand.Address, cand.FormattedAddr); addr != "" {
			ev.Subtitle = addr
		}
	}

	// The coordinate moved between versions: prefer the candidate's
	// placeLocation, then the visit-level one.
	if visit.TopCandidate != nil && visit.TopCandidate.PlaceLocation.ok {
		ev.Point = visit.TopCandidate.PlaceLocation.point()
	} else if visit.PlaceLocation.ok {
		ev.Point = visit.PlaceLocation.point()
	}

	return ev
}

func semanticMovementEvent(seg *semanticSegment, start time.Time, end *time.Time) Event {
	activity := seg.Activity

	// Movement type resolution order: topCandidate.type, activityType.
	movementType := ""
	if activity.TopCandidate != nil {
		movementType = firstNonEmpty(activity.TopCandidate.Type)
	}
	movementType = firstNonEmpty(movementType, activity.ActivityType)
	if movementType == "" {
		movementType = "UNKNOWN"
	}

	ev := Event{
		Kind:           KindMovement,
		Start:          start,
		End:            end,
		Title:          titleCaseType(movementType),
		Subtitle:       distanceSubtitle(activity.DistanceMeters),
		Icon:           IconForMovementType(movementType),
		MovementType:   movementType,
		DistanceMeters: activity.DistanceMeters,
	}

	path := []LatLng{}
	for _, pp := range seg.TimelinePath {
		if p := pp.Point.point(); p != nil {
			path = append(path, *p)
		}
	}
	if len(path) < 2 {
		// Too sparse to draw: synthesize a path from the endpoint
		// coordinates, but never trade a real point for fewer.
		synth := make([]LatLng, 0, 2)
		if p := activity.Start.point(); p != nil {
			synth = append(synth, *p)
		}
		if p := activity.End.point(); p != nil {
			synth = append(synth, *p)
		}
		if len(synth) > len(path) {
			path = synth
		}
	}
	ev.Path = path

	return ev
}
