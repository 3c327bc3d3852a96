package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeE7(t *testing.T) {
	lat, ok := decodeE7(json.Number("351234567"))
	require.True(t, ok)
	assert.InDelta(t, 35.1234567, lat, 1e-9)

	lon, ok := decodeE7(json.Number("1391234567"))
	require.True(t, ok)
	assert.InDelta(t, 139.1234567, lon, 1e-9)

	_, ok = decodeE7(json.Number("garbage"))
	assert.False(t, ok)
}

func TestDecodeLatLngText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLat  float64
		wantLon  float64
		wantOK   bool
	}{
		{"degree glyphs", "35.1234567°, 139.1234567°", 35.1234567, 139.1234567, true},
		{"bare comma pair", "35.1,139.1", 35.1, 139.1, true},
		{"no comma falls back to pattern match", "35.1 139.1", 35.1, 139.1, true},
		{"negative longitude", "37.422°, -122.084°", 37.422, -122.084, true},
		{"not a coordinate", "not a coordinate", 0, 0, false},
		{"single number", "35.1", 0, 0, false},
		{"empty", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, ok := decodeLatLngText(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantLat, lat, 1e-9)
				assert.InDelta(t, tt.wantLon, lon, 1e-9)
			}
		})
	}
}

func TestDecodeDualTimestamp(t *testing.T) {
	want := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)

	fromISO, ok := decodeDualTimestamp("2023-05-01T10:00:00Z", epochMillis{})
	require.True(t, ok)
	assert.True(t, fromISO.Equal(want))

	fromEpoch, ok := decodeDualTimestamp("", epochMillis{v: want.UnixMilli(), ok: true})
	require.True(t, ok)
	assert.True(t, fromEpoch.Equal(want))

	// ISO wins when both are present: it carries the zone.
	other := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	both, ok := decodeDualTimestamp("2023-05-01T10:00:00Z", epochMillis{v: other.UnixMilli(), ok: true})
	require.True(t, ok)
	assert.True(t, both.Equal(want))

	// Invalid ISO falls through to the epoch.
	fallback, ok := decodeDualTimestamp("yesterday-ish", epochMillis{v: want.UnixMilli(), ok: true})
	require.True(t, ok)
	assert.True(t, fallback.Equal(want))

	_, ok = decodeDualTimestamp("", epochMillis{})
	assert.False(t, ok)
}

func TestEpochMillisTolerantDecoding(t *testing.T) {
	var payload struct {
		Numeric epochMillis `json:"numeric"`
		Quoted  epochMillis `json:"quoted"`
		Junk    epochMillis `json:"junk"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"numeric": 1682935200000, "quoted": "1682935200000", "junk": {"nested": true}}`), &payload))

	assert.True(t, payload.Numeric.ok)
	assert.Equal(t, int64(1682935200000), payload.Numeric.v)
	assert.True(t, payload.Quoted.ok)
	assert.Equal(t, int64(1682935200000), payload.Quoted.v)
	assert.False(t, payload.Junk.ok)
}

func TestCoordE7TolerantDecoding(t *testing.T) {
	var payload struct {
		Numeric coordE7 `json:"numeric"`
		Quoted  coordE7 `json:"quoted"`
		Junk    coordE7 `json:"junk"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"numeric": 351234567, "quoted": "351234567", "junk": true}`), &payload))

	assert.True(t, payload.Numeric.ok)
	assert.InDelta(t, 35.1234567, payload.Numeric.deg, 1e-9)
	assert.True(t, payload.Quoted.ok)
	assert.False(t, payload.Junk.ok)
}

func TestLatLngTextShapes(t *testing.T) {
	var payload struct {
		Bare   latLngText `json:"bare"`
		Nested latLngText `json:"nested"`
		Junk   latLngText `json:"junk"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{
		"bare": "35.1°, 139.1°",
		"nested": {"latLng": "35.2°, 139.2°"},
		"junk": 42
	}`), &payload))

	require.True(t, payload.Bare.ok)
	assert.InDelta(t, 35.1, payload.Bare.lat, 1e-9)
	require.True(t, payload.Nested.ok)
	assert.InDelta(t, 139.2, payload.Nested.lon, 1e-9)
	assert.False(t, payload.Junk.ok)
	assert.Nil(t, payload.Junk.point())
}
