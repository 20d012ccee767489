// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olegiv/scms-go/internal/section"
)

// calendarEventRequest is the body of POST /api/calendar/event.
// A null event deletes the entry for that date.
type calendarEventRequest struct {
	Date  string          `json:"date"`
	Event json.RawMessage `json:"event"`
}

// UpsertCalendarEvent handles POST /api/calendar/event: set or delete
// a single day's event without replacing the whole calendar.
func (h *Handler) UpsertCalendarEvent(w http.ResponseWriter, r *http.Request) {
	var req calendarEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !section.IsValidDateKey(req.Date) {
		WriteError(w, http.StatusBadRequest, "invalid date key: "+req.Date)
		return
	}

	schema, _ := section.ByKey(section.KeyCalendar)
	doc, err := h.sections.GetObject(r.Context(), schema.Key, schema.Default())
	if err != nil {
		slog.Error("failed to load calendar", "error", err)
		WriteError(w, http.StatusInternalServerError, "failed to load content")
		return
	}

	events, ok := doc["events"].(map[string]any)
	if !ok {
		events = map[string]any{}
	}

	var event any
	if len(req.Event) > 0 {
		if err := json.Unmarshal(req.Event, &event); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid event value")
			return
		}
	}

	if event == nil {
		delete(events, req.Date)
	} else {
		events[req.Date] = section.NormalizeCalendarEvent(event)
	}
	doc["events"] = events

	if err := h.sections.Set(r.Context(), schema.Key, doc); err != nil {
		slog.Error("failed to store calendar", "error", err)
		WriteError(w, http.StatusInternalServerError, "failed to save content")
		return
	}

	WriteSuccess(w, map[string]any{"calendar": doc})
}
