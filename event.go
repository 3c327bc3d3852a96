package main

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// EventKind distinguishes the three canonical record variants.
type EventKind string

const (
	KindMovement EventKind = "movement"
	KindVisit    EventKind = "visit"
	KindRawPoint EventKind = "point"
)

// LatLng is a WGS84 coordinate in decimal degrees. Values are passed
// through uninterpreted; the export is trusted, no range checks.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Event is the canonical record all three export formats normalize into.
// Start is always valid; records without a resolvable start never survive
// parsing. End may be absent or earlier than Start - downstream code must
// tolerate inverted ranges.
type Event struct {
	Kind           EventKind  `json:"kind"`
	Start          time.Time  `json:"start"`
	End            *time.Time `json:"end,omitempty"`
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle"`
	Icon           string     `json:"icon"`
	Point          *LatLng    `json:"point,omitempty"`
	Path           []LatLng   `json:"path,omitempty"`
	DistanceMeters *float64   `json:"distance_meters,omitempty"`
	MovementType   string     `json:"movement_type,omitempty"`
}

// Icon vocabulary. The classifier below maps free-text activity types onto
// these; visits and raw fixes get fixed icons.
const (
	IconWalk  = "walk"
	IconBike  = "bike"
	IconTrain = "train"
	IconBus   = "bus"
	IconPlane = "plane"
	IconCar   = "car"
	IconStill = "still"
	IconMove  = "move"
	IconPlace = "place"
	IconPoint = "point"
)

// iconRule pairs substring needles with an icon. Order matters: first
// matching category wins, so e.g. "MOTORCYCLING" hits the cycling rule
// before the motor-vehicle one - a loose heuristic, not a vocabulary.
type iconRule struct {
	needles []string
	icon    string
}

var iconRules = []iconRule{
	{[]string{"walk", "foot", "hik", "run"}, IconWalk},
	{[]string{"cycl", "bik", "skat"}, IconBike},
	{[]string{"rail", "train", "subway", "tram", "metro"}, IconTrain},
	{[]string{"bus"}, IconBus},
	{[]string{"fly", "flight", "plane", "air"}, IconPlane},
	{[]string{"car", "driv", "vehicle", "motor", "taxi", "ferry", "boat"}, IconCar},
	{[]string{"still", "stationary"}, IconStill},
}

// IconForMovementType maps a free-text movement-type string to an icon by
// case-insensitive substring match.
func IconForMovementType(movementType string) string {
	lowered := strings.ToLower(movementType)
	for _, rule := range iconRules {
		for _, needle := range rule.needles {
			if strings.Contains(lowered, needle) {
				return rule.icon
			}
		}
	}
	return IconMove
}

// titleCaseType turns "IN_PASSENGER_VEHICLE" into "In Passenger Vehicle".
func titleCaseType(movementType string) string {
	words := strings.Fields(strings.ReplaceAll(movementType, "_", " "))
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

const distanceUnknown = "distance unknown"

// distanceSubtitle formats a distance in meters for display: kilometers to
// one decimal at >= 1000m, whole meters below, a generic label otherwise.
func distanceSubtitle(meters *float64) string {
	if meters == nil || math.IsNaN(*meters) || math.IsInf(*meters, 0) {
		return distanceUnknown
	}
	if *meters >= 1000 {
		return fmt.Sprintf("%.1f km", *meters/1000)
	}
	return fmt.Sprintf("%.0f m", *meters)
}
