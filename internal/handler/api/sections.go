// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/section"
)

// GetSection returns a handler for GET /api/{route}. The response is
// the section's document itself, not wrapped in an envelope, so site
// pages can consume it directly. A never-written section returns its
// default document. Legacy stored shapes are upgraded on read without
// touching storage.
func (h *Handler) GetSection(schema section.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.sections.Get(r.Context(), schema.Key, schema.Default())
		if err != nil {
			slog.Error("failed to load section", "key", schema.Key, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to load content")
			return
		}

		if schema.Upgrade != nil {
			doc = schema.Upgrade(doc)
		}

		WriteJSON(w, http.StatusOK, doc)
	}
}

// UpdateSection returns a handler for the section's write route.
// Merge-policy sections shallow-merge the payload's top-level fields
// over the stored document; replace-policy sections rebuild the whole
// document from the payload. Invalid payloads reject the entire write.
func (h *Handler) UpdateSection(schema section.Schema) http.HandlerFunc {
	if schema.Policy == section.PolicyMerge {
		return h.mergeSection(schema)
	}
	return h.replaceSection(schema)
}

func (h *Handler) mergeSection(schema section.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		doc, err := h.sections.GetObject(r.Context(), schema.Key, schema.Default())
		if err != nil {
			slog.Error("failed to load section", "key", schema.Key, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to load content")
			return
		}

		for k, v := range payload {
			doc[k] = v
		}
		if schema.Sanitize != nil {
			doc = schema.Sanitize(doc)
		}

		if err := h.sections.Set(r.Context(), schema.Key, doc); err != nil {
			slog.Error("failed to store section", "key", schema.Key, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to save content")
			return
		}

		slog.Info("section updated", "category", "content",
			"key", schema.Key, "user", middleware.GetUsername(r))
		WriteSuccess(w, nil)
	}
}

func (h *Handler) replaceSection(schema section.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		doc, err := schema.Normalize(payload)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := h.sections.Set(r.Context(), schema.Key, doc); err != nil {
			slog.Error("failed to store section", "key", schema.Key, "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to save content")
			return
		}

		slog.Info("section replaced", "category", "content",
			"key", schema.Key, "user", middleware.GetUsername(r))
		WriteSuccess(w, nil)
	}
}

// DeleteBanner handles DELETE /api/banner. Clearing the banner resets
// it to the empty default rather than removing the row.
func (h *Handler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	schema, _ := section.ByKey(section.KeyBanner)

	if err := h.sections.Set(r.Context(), schema.Key, schema.Default()); err != nil {
		slog.Error("failed to clear banner", "error", err)
		WriteError(w, http.StatusInternalServerError, "failed to save content")
		return
	}

	slog.Info("banner cleared", "category", "content",
		"user", middleware.GetUsername(r))
	WriteSuccess(w, nil)
}

// ListSections handles GET /api/sections, the admin index of stored
// section keys.
func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	keys, err := h.queries.ListSectionKeys(r.Context())
	if err != nil {
		slog.Error("failed to list sections", "error", err)
		WriteError(w, http.StatusInternalServerError, "failed to list sections")
		return
	}

	WriteSuccess(w, map[string]any{"sections": keys})
}
