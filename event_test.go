package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconForMovementType(t *testing.T) {
	tests := []struct {
		movementType string
		want         string
	}{
		{"WALKING", IconWalk},
		{"RUNNING", IconWalk},
		{"CYCLING", IconBike},
		{"IN_TRAIN", IconTrain},
		{"IN_SUBWAY", IconTrain},
		{"IN_BUS", IconBus},
		{"FLYING", IconPlane},
		{"IN_PASSENGER_VEHICLE", IconCar},
		{"STILL", IconStill},
		{"UNKNOWN", IconMove},
		{"", IconMove},
		// Substring matching is order-sensitive: the cycling rule sees
		// "cycl" before the motor-vehicle rule sees "motor".
		{"MOTORCYCLING", IconBike},
		// Case-insensitive.
		{"walking", IconWalk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IconForMovementType(tt.movementType), "type %q", tt.movementType)
	}
}

func TestTitleCaseType(t *testing.T) {
	assert.Equal(t, "Walking", titleCaseType("WALKING"))
	assert.Equal(t, "In Passenger Vehicle", titleCaseType("IN_PASSENGER_VEHICLE"))
	assert.Equal(t, "Home", titleCaseType("home"))
	assert.Equal(t, "", titleCaseType(""))
	assert.Equal(t, "", titleCaseType("___"))
}

func TestDistanceSubtitle(t *testing.T) {
	km := 12345.0
	m := 850.0
	zero := 0.0

	assert.Equal(t, "12.3 km", distanceSubtitle(&km))
	assert.Equal(t, "850 m", distanceSubtitle(&m))
	assert.Equal(t, "0 m", distanceSubtitle(&zero))
	assert.Equal(t, "distance unknown", distanceSubtitle(nil))

	boundary := 1000.0
	assert.Equal(t, "1.0 km", distanceSubtitle(&boundary))
}
