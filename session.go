package main

import (
	"time"

	"github.com/google/uuid"
)

// Session owns everything derived from one loaded document: the detected
// format, the canonical event list (sorted by start), the day index and
// the navigator. A successful load replaces all of it at once; a failed
// load leaves the previous state untouched, so callers decide whether a
// stale timeline stays visible.
type Session struct {
	loc *time.Location

	DocumentID string
	Format     Format
	Events     []Event
	Index      *DayIndex
	Nav        *Navigator
	LoadedAt   time.Time
}

// NewSession creates an empty session deriving days in the given timezone.
func NewSession(loc *time.Location) *Session {
	if loc == nil {
		loc = time.Local
	}
	s := &Session{loc: loc}
	s.Apply("", FormatUnrecognized, []Event{})
	return s
}

// Apply swaps the session state to an already-parsed document. Callers that
// must commit the document elsewhere first (the event store) parse, commit,
// then apply, so a commit failure publishes nothing.
func (s *Session) Apply(docID string, format Format, events []Event) {
	s.DocumentID = docID
	s.Format = format
	s.Events = events
	s.Index = BuildDayIndex(events, s.loc)
	s.Nav = NewNavigator(s.Index)
	s.LoadedAt = time.Now()
}

// Load parses a raw export document and swaps the session state. On a
// parse error nothing changes and the error carries the decoder detail.
func (s *Session) Load(data []byte) error {
	result, err := ParseDocument(data)
	if err != nil {
		return err
	}
	s.Apply(uuid.New().String(), result.Format, result.Events)
	return nil
}

// EventsForDay returns the loaded events whose start falls on the given
// calendar day, in start order.
func (s *Session) EventsForDay(day time.Time) []Event {
	return EventsForDay(s.Events, day, s.loc)
}

// Location returns the timezone days are derived in.
func (s *Session) Location() *time.Location { return s.loc }
