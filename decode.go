package main

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// e7Scale converts fixed-point E7 coordinates (degrees * 10^7) to degrees.
const e7Scale = 1e7

// decodeE7 converts a fixed-point coordinate to decimal degrees.
// Returns false if the raw value is not a finite number.
func decodeE7(raw json.Number) (float64, bool) {
	v, err := raw.Float64()
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v / e7Scale, true
}

var floatPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// decodeLatLngText extracts latitude and longitude from strings like
// "37.422°, -122.084°" or "37.422,-122.084". Older semantic exports are
// inconsistent about separators and unit suffixes, so after the strict
// comma split fails we fall back to grabbing the first two float-looking
// substrings.
func decodeLatLngText(s string) (lat, lon float64, ok bool) {
	cleaned := strings.ReplaceAll(s, "°", "")
	parts := strings.Split(cleaned, ",")
	if len(parts) == 2 {
		latV, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lonV, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLat == nil && errLon == nil && isFinite(latV) && isFinite(lonV) {
			return latV, lonV, true
		}
	}

	matches := floatPattern.FindAllString(cleaned, 2)
	if len(matches) < 2 {
		return 0, 0, false
	}
	latV, errLat := strconv.ParseFloat(matches[0], 64)
	lonV, errLon := strconv.ParseFloat(matches[1], 64)
	if errLat != nil || errLon != nil || !isFinite(latV) || !isFinite(lonV) {
		return 0, 0, false
	}
	return latV, lonV, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// decodeISOTime parses an ISO-8601 timestamp. Some export generations emit
// a fractional-seconds variant without a zone colon, so try that second.
func decodeISOTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05.000-07:00", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// decodeDualTimestamp resolves a timestamp that may be supplied as an
// ISO-8601 string, a millisecond epoch, or both. ISO wins when both are
// present because it carries an explicit zone.
func decodeDualTimestamp(iso string, epoch epochMillis) (time.Time, bool) {
	if t, ok := decodeISOTime(iso); ok {
		return t, true
	}
	if epoch.ok {
		return time.UnixMilli(epoch.v), true
	}
	return time.Time{}, false
}

// epochMillis is a millisecond epoch that tolerates both numeric and
// numeric-string encodings. Unparseable values leave it unset instead of
// failing the enclosing record.
type epochMillis struct {
	v  int64
	ok bool
}

func (m *epochMillis) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if i, err := n.Int64(); err == nil {
		m.v, m.ok = i, true
		return nil
	}
	if f, err := n.Float64(); err == nil && isFinite(f) {
		m.v, m.ok = int64(f), true
	}
	return nil
}

// coordE7 is a fixed-point coordinate field that tolerates numeric and
// numeric-string encodings, decoded to decimal degrees.
type coordE7 struct {
	deg float64
	ok  bool
}

func (c *coordE7) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		n = json.Number(strings.TrimSpace(s))
	}
	c.deg, c.ok = decodeE7(n)
	return nil
}

// latLngText is a free-text coordinate field that appears either as a bare
// string or nested one level under a "latLng" key, depending on the export
// generation. Both shapes are tried; anything else leaves it unset.
type latLngText struct {
	lat, lon float64
	ok       bool
}

func (l *latLngText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		l.lat, l.lon, l.ok = decodeLatLngText(s)
		return nil
	}
	var nested struct {
		LatLng string `json:"latLng"`
	}
	if err := json.Unmarshal(b, &nested); err == nil && nested.LatLng != "" {
		l.lat, l.lon, l.ok = decodeLatLngText(nested.LatLng)
	}
	return nil
}

func (l latLngText) point() *LatLng {
	if !l.ok {
		return nil
	}
	return &LatLng{Lat: l.lat, Lon: l.lon}
}
