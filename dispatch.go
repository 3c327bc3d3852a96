package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Format identifies which export schema generation a document matched.
type Format string

const (
	FormatLegacy       Format = "legacy"       // timelineObjects: old Takeout semantic export
	FormatSemantic     Format = "semantic"     // semanticSegments: on-device Timeline export
	FormatRawLocations Format = "rawLocations" // locations: raw location-history records
	FormatUnrecognized Format = "unrecognized"
)

// ParseResult is what a load produces: the detected format tag and the
// canonical events, ordered by start.
type ParseResult struct {
	Format Format  `json:"format"`
	Events []Event `json:"events"`
}

// DetectFormat inspects a document's top-level keys in priority order and
// returns the first match. The check is structural - key presence plus
// array-typedness - not schema validation. Extra unrelated keys are
// ignored, and only one format is ever active per document.
func DetectFormat(doc map[string]json.RawMessage) Format {
	switch {
	case isJSONArray(doc["timelineObjects"]):
		return FormatLegacy
	case isJSONArray(doc["semanticSegments"]):
		return FormatSemantic
	case isJSONArray(doc["locations"]):
		return FormatRawLocations
	default:
		return FormatUnrecognized
	}
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ParseDocument parses a raw export document into canonical events.
//
// Invalid JSON or a non-object top level is the only error condition; it
// surfaces the decoder detail for display and produces no events. An
// unrecognized schema is not an error - it yields FormatUnrecognized with
// an empty event list, and callers distinguish "no data" from "wrong
// format" via the tag. Within a recognized format, malformed elements are
// dropped one at a time, never aborting the parse.
func ParseDocument(data []byte) (*ParseResult, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse export document: %w", err)
	}

	result := &ParseResult{Format: DetectFormat(doc), Events: []Event{}}

	switch result.Format {
	case FormatLegacy:
		result.Events = parseLegacy(doc["timelineObjects"])
	case FormatSemantic:
		result.Events = parseSemantic(doc["semanticSegments"])
	case FormatRawLocations:
		result.Events = parseRawLocations(doc["locations"])
	}

	sort.SliceStable(result.Events, func(i, j int) bool {
		return result.Events[i].Start.Before(result.Events[j].Start)
	})

	return result, nil
}

// splitElements decodes a top-level array into raw elements so each one
// can be unmarshaled independently - a malformed record drops only itself.
// Export files are large and routinely contain a few bad records.
func splitElements(raw json.RawMessage) []json.RawMessage {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}
	return elements
}
