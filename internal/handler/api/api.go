// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers for the site content,
// calendar, uploads and admin authentication.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/scms-go/internal/auth"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/section"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db       *sql.DB
	queries  *store.Queries
	sections *section.Store
	uploads  *service.UploadService
	tokens   *auth.TokenManager
	lockout  *middleware.LoginProtection
	version  string
	started  time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, uploadDir string, tokens *auth.TokenManager, lockout *middleware.LoginProtection, version string) *Handler {
	queries := store.New(db)
	return &Handler{
		db:       db,
		queries:  queries,
		sections: section.NewStore(queries),
		uploads:  service.NewUploadService(db, uploadDir),
		tokens:   tokens,
		lockout:  lockout,
		version:  version,
		started:  time.Now(),
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a {"success": true} response, merged with any
// extra fields the endpoint returns.
func WriteSuccess(w http.ResponseWriter, extra map[string]any) {
	resp := map[string]any{"success": true}
	for k, v := range extra {
		resp[k] = v
	}
	WriteJSON(w, http.StatusOK, resp)
}

// WriteError writes a {"success": false, "error": ...} response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}

// Status handles GET /api/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	WriteSuccess(w, map[string]any{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
