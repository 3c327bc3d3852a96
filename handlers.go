package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Server wires the session, its SQLite mirror and the HTTP surface.
// Loads are serialized; the session/store pair swaps under one lock so no
// request ever observes a half-updated timeline.
type Server struct {
	session *Session
	store   *Store

	maxImportBytes int64
	mu             sync.RWMutex
}

// ImportResponse summarizes a completed load.
type ImportResponse struct {
	DocumentID string         `json:"document_id"`
	Format     Format         `json:"format"`
	EventCount int            `json:"event_count"`
	DayCount   int            `json:"day_count"`
	Kinds      map[string]int `json:"kinds"`
	FirstDay   string         `json:"first_day,omitempty"`
	LastDay    string         `json:"last_day,omitempty"`
}

// NavState is the navigator's externally visible state.
type NavState struct {
	CurrentDay string `json:"current_day,omitempty"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	Position   int    `json:"position"`
	DayCount   int    `json:"day_count"`
}

const dayLayout = "2006-01-02"

// POST /api/import - parse an export document and replace the timeline
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "document too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A failed parse leaves the previous document fully intact.
	result, err := ParseDocument(body)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	// Commit to the store before publishing the session. A failed rebuild
	// rolls back, so the previous document stays current everywhere.
	docID := uuid.New().String()
	if err := s.store.ReplaceEvents(docID, result.Events); err != nil {
		log.Printf("failed to rebuild event store: %v", err)
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	s.session.Apply(docID, result.Format, result.Events)

	log.Printf("imported document %s: format=%s events=%d days=%d",
		s.session.DocumentID, s.session.Format, len(s.session.Events), s.session.Index.Len())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.importResponseLocked())
}

func (s *Server) importResponseLocked() ImportResponse {
	resp := ImportResponse{
		DocumentID: s.session.DocumentID,
		Format:     s.session.Format,
		EventCount: len(s.session.Events),
		DayCount:   s.session.Index.Len(),
	}
	if counts, err := s.store.CountsByKind(); err == nil {
		resp.Kinds = counts
	}
	if resp.DayCount > 0 {
		resp.FirstDay = s.session.Index.At(0).Format(dayLayout)
		resp.LastDay = s.session.Index.At(resp.DayCount - 1).Format(dayLayout)
	}
	return resp
}

// TimelineResponse is the API response for /api/timeline
type TimelineResponse struct {
	DocumentID string   `json:"document_id,omitempty"`
	Format     Format   `json:"format"`
	EventCount int      `json:"event_count"`
	Days       []string `json:"days"`
	Nav        NavState `json:"nav"`
}

// GET /api/timeline - detected format, day list and navigator state
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := TimelineResponse{
		DocumentID: s.session.DocumentID,
		Format:     s.session.Format,
		EventCount: len(s.session.Events),
		Days:       []string{},
		Nav:        s.navStateLocked(),
	}
	for _, day := range s.session.Index.Days() {
		resp.Days = append(resp.Days, day.Format(dayLayout))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GET /api/day?date=YYYY-MM-DD - events whose start falls on that day
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.parseDayParamLocked(w, r)
	if !ok {
		return
	}

	events, err := s.store.EventsForDay(day.Format(dayLayout))
	if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []Event{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"date":   day.Format(dayLayout),
		"events": events,
	})
}

// GET /api/day.ics?date=YYYY-MM-DD - one day as an iCalendar document
func (s *Server) handleDayICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.parseDayParamLocked(w, r)
	if !ok {
		return
	}

	events := s.session.EventsForDay(day)
	payload := BuildDayCalendar(s.session.DocumentID, day, events)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+day.Format(dayLayout)+".ics\"")
	io.WriteString(w, payload)
}

// navRequest is the body for POST /api/nav
type navRequest struct {
	Action string `json:"action"` // prev, next, select
	Date   string `json:"date,omitempty"`
}

// GET/POST /api/nav - read or move the day cursor
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		state := s.navStateLocked()
		s.mu.RUnlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)

	case http.MethodPost:
		var req navRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		switch req.Action {
		case "prev":
			s.session.Nav.GoPrev()
		case "next":
			s.session.Nav.GoNext()
		case "select":
			day, err := time.ParseInLocation(dayLayout, req.Date, s.session.Location())
			if err != nil {
				s.mu.Unlock()
				http.Error(w, "invalid date", http.StatusBadRequest)
				return
			}
			// Selecting a day that has no data is a silent no-op.
			s.session.Nav.SelectDay(day)
		default:
			s.mu.Unlock()
			http.Error(w, "unknown action", http.StatusBadRequest)
			return
		}
		state := s.navStateLocked()
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) navStateLocked() NavState {
	state := NavState{
		HasPrev:  s.session.Nav.HasPrev(),
		HasNext:  s.session.Nav.HasNext(),
		Position: -1,
		DayCount: s.session.Index.Len(),
	}
	if day, ok := s.session.Nav.CurrentDay(); ok {
		state.CurrentDay = day.Format(dayLayout)
		state.Position, _ = s.session.Index.IndexOf(day)
	}
	return state
}

// parseDayParamLocked reads and validates the date query parameter.
func (s *Server) parseDayParamLocked(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		http.Error(w, "date required", http.StatusBadRequest)
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(dayLayout, dateStr, s.session.Location())
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return time.Time{}, false
	}
	return day, true
}
