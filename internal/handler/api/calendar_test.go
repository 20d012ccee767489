// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestCalendarReplaceValid(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/api/calendar", map[string]any{
		"events": map[string]any{
			"2025-09-01": map[string]any{"type": "academic", "title": "First day"},
			"2025-12-25": map[string]any{"type": "holiday", "title": "Winter break"},
		},
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/calendar", nil, false)
	doc := decodeJSON(t, rec)
	events := doc["events"].(map[string]any)
	if len(events) != 2 {
		t.Fatalf("events = %v", events)
	}
	ev := events["2025-09-01"].(map[string]any)
	if ev["type"] != "academic" || ev["title"] != "First day" {
		t.Errorf("event = %v", ev)
	}
}

func TestCalendarReplaceInvalidDateRejectedAtomically(t *testing.T) {
	s := newTestServer(t)

	// Store a valid calendar first
	rec := s.do(t, http.MethodPut, "/api/calendar", map[string]any{
		"events": map[string]any{
			"2025-09-01": map[string]any{"title": "Keep me"},
		},
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// Mixed valid/invalid keys must reject the whole write
	rec = s.do(t, http.MethodPut, "/api/calendar", map[string]any{
		"events": map[string]any{
			"2025-10-01": map[string]any{"title": "Valid"},
			"2025/09/10": map[string]any{"title": "Invalid"},
		},
	}, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeJSON(t, rec)
	if resp["success"] != false || !strings.Contains(resp["error"].(string), "invalid date key") {
		t.Errorf("response = %v", resp)
	}

	// Previous state intact
	rec = s.do(t, http.MethodGet, "/api/calendar", nil, false)
	doc := decodeJSON(t, rec)
	events := doc["events"].(map[string]any)
	if len(events) != 1 {
		t.Errorf("events = %v", events)
	}
	if _, ok := events["2025-09-01"]; !ok {
		t.Error("previous event lost")
	}
}

func TestCalendarEventUpsertAndDelete(t *testing.T) {
	s := newTestServer(t)

	// Add an event
	rec := s.do(t, http.MethodPost, "/api/calendar/event", map[string]any{
		"date":  "2025-09-10",
		"event": map[string]any{"type": "party", "title": "Sports day"},
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeJSON(t, rec)
	calendar := resp["calendar"].(map[string]any)
	events := calendar["events"].(map[string]any)
	ev := events["2025-09-10"].(map[string]any)
	// Unknown type coerced to the generic event type
	if ev["type"] != "event" || ev["title"] != "Sports day" {
		t.Errorf("event = %v", ev)
	}

	// Overwrite the same date
	rec = s.do(t, http.MethodPost, "/api/calendar/event", map[string]any{
		"date":  "2025-09-10",
		"event": map[string]any{"type": "holiday", "title": "Rescheduled"},
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/calendar", nil, false)
	doc := decodeJSON(t, rec)
	events = doc["events"].(map[string]any)
	if len(events) != 1 {
		t.Fatalf("events = %v", events)
	}
	ev = events["2025-09-10"].(map[string]any)
	if ev["title"] != "Rescheduled" || ev["type"] != "holiday" {
		t.Errorf("event = %v", ev)
	}

	// Null event deletes the entry
	rec = s.do(t, http.MethodPost, "/api/calendar/event", map[string]any{
		"date":  "2025-09-10",
		"event": nil,
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/calendar", nil, false)
	doc = decodeJSON(t, rec)
	events = doc["events"].(map[string]any)
	if len(events) != 0 {
		t.Errorf("events after delete = %v", events)
	}
}

func TestCalendarEventInvalidDate(t *testing.T) {
	s := newTestServer(t)

	for _, date := range []string{"2025/09/10", "2025-9-1", "today", ""} {
		rec := s.do(t, http.MethodPost, "/api/calendar/event", map[string]any{
			"date":  date,
			"event": map[string]any{"title": "x"},
		}, true)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("date %q status = %d, want 400", date, rec.Code)
		}
	}

	// No state change from rejected writes
	rec := s.do(t, http.MethodGet, "/api/calendar", nil, false)
	doc := decodeJSON(t, rec)
	if events := doc["events"].(map[string]any); len(events) != 0 {
		t.Errorf("events = %v", events)
	}
}
