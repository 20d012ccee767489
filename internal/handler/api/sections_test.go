// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/olegiv/scms-go/internal/section"
)

func TestGetSectionReturnsSeededDefault(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/vice", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	doc := decodeJSON(t, rec)
	if doc["signatureHtml"] != "Mr.<br/>Vice Principal" {
		t.Errorf("signatureHtml = %v", doc["signatureHtml"])
	}
	// Section reads return the bare document, no envelope
	if _, ok := doc["success"]; ok {
		t.Error("section read wrapped in envelope")
	}
}

func TestGetAllSectionsPublic(t *testing.T) {
	s := newTestServer(t)

	routes := []string{
		"vice", "mission-vision", "success", "cafeteria", "special-programs",
		"banner", "calendar", "activities", "volunteer", "process",
		"application", "tuition", "news", "faq", "contact",
	}
	for _, route := range routes {
		rec := s.do(t, http.MethodGet, "/api/"+route, nil, false)
		if rec.Code != http.StatusOK {
			t.Errorf("GET /api/%s status = %d, want 200", route, rec.Code)
		}
	}
}

func TestMergeSectionKeepsOtherFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/success", map[string]any{"graduates": "456"}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeJSON(t, rec)
	if resp["success"] != true {
		t.Errorf("response = %v", resp)
	}

	rec = s.do(t, http.MethodGet, "/api/success", nil, false)
	doc := decodeJSON(t, rec)
	if doc["graduates"] != "456" {
		t.Errorf("graduates = %v, want 456", doc["graduates"])
	}
	// Untouched fields survive the merge
	if doc["subtitle"] != "Celebrating achievements and milestones" {
		t.Errorf("subtitle = %v", doc["subtitle"])
	}
}

func TestMergeSectionSanitizesRichText(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/vice", map[string]any{
		"signatureHtml": `Ms.<br/><script>alert(1)</script>Principal`,
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/vice", nil, false)
	doc := decodeJSON(t, rec)
	sig := doc["signatureHtml"].(string)
	if strings.Contains(sig, "<script>") {
		t.Errorf("script survived: %q", sig)
	}
	if !strings.Contains(sig, "Principal") {
		t.Errorf("content lost: %q", sig)
	}
}

func TestMergeSectionRejectsNonObject(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/success", []any{"not", "an", "object"}, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReplaceSectionDropsUnknownFields(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/activities", map[string]any{
		"subtitle": "After school",
		"items": []any{
			map[string]any{"title": "Chess Club", "bogus": "dropped"},
		},
		"unknownTop": "dropped too",
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/activities", nil, false)
	doc := decodeJSON(t, rec)

	// Missing title defaulted, unknown fields dropped
	if doc["title"] != "Extracurricular Activities" {
		t.Errorf("title = %v", doc["title"])
	}
	if _, ok := doc["unknownTop"]; ok {
		t.Error("unknown top-level field kept")
	}
	items := doc["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %v", items)
	}
	item := items[0].(map[string]any)
	if item["title"] != "Chess Club" {
		t.Errorf("item = %v", item)
	}
	if _, ok := item["bogus"]; ok {
		t.Error("unknown item field kept")
	}
}

func TestReplaceSectionsAcceptPut(t *testing.T) {
	s := newTestServer(t)

	// The admin client saves these sections with PUT; banner keeps its
	// POST/DELETE pair and calendar has its own PUT wiring.
	for _, schema := range section.Registry {
		if schema.Policy != section.PolicyReplace || schema.Key == section.KeyBanner {
			continue
		}
		rec := s.do(t, http.MethodPut, "/api/"+schema.Route, schema.Default(), true)
		if rec.Code != http.StatusOK {
			t.Errorf("PUT /api/%s status = %d, body = %s", schema.Route, rec.Code, rec.Body.String())
		}
	}

	// A PUT write lands the same way a POST one does
	rec := s.do(t, http.MethodPut, "/api/news", map[string]any{
		"items": []any{map[string]any{"title": "Open Day", "date": "2026-09-01"}},
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/news status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/news", nil, false)
	doc := decodeJSON(t, rec)
	items := doc["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %v", items)
	}
	if items[0].(map[string]any)["title"] != "Open Day" {
		t.Errorf("item = %v", items[0])
	}
}

func TestListSections(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/sections", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	resp := decodeJSON(t, rec)
	keys := resp["sections"].([]any)
	if len(keys) != len(section.Registry) {
		t.Errorf("sections = %d, want %d", len(keys), len(section.Registry))
	}

	// The index is an admin surface
	rec = s.do(t, http.MethodGet, "/api/sections", nil, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rec.Code)
	}
}

func TestWritesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/success", map[string]any{"graduates": "1"}},
		{http.MethodPut, "/api/news", map[string]any{"items": []any{}}},
		{http.MethodPost, "/api/banner", map[string]any{"imageUrl": "/x"}},
		{http.MethodDelete, "/api/banner", nil},
		{http.MethodPut, "/api/calendar", map[string]any{"events": map[string]any{}}},
		{http.MethodPost, "/api/calendar/event", map[string]any{"date": "2025-09-10"}},
		{http.MethodPost, "/api/upload", nil},
		{http.MethodGet, "/api/uploads", nil},
	}

	for _, tt := range tests {
		rec := s.do(t, tt.method, tt.path, tt.body, false)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", tt.method, tt.path, rec.Code)
		}
	}

	// Reads stay public
	rec := s.do(t, http.MethodGet, "/api/banner", nil, false)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/banner status = %d, want 200", rec.Code)
	}
}

func TestBannerPostAndDelete(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/banner", map[string]any{"imageUrl": "/uploads/b.jpg"}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/banner", nil, false)
	doc := decodeJSON(t, rec)
	if doc["imageUrl"] != "/uploads/b.jpg" {
		t.Errorf("imageUrl = %v", doc["imageUrl"])
	}

	rec = s.do(t, http.MethodDelete, "/api/banner", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/banner", nil, false)
	doc = decodeJSON(t, rec)
	if doc["imageUrl"] != "" {
		t.Errorf("imageUrl after delete = %v", doc["imageUrl"])
	}
}

func TestTuitionLegacyWriteUpgradedOnRead(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/tuition", map[string]any{
		"title": "Legacy Tuition",
		"cards": []any{
			map[string]any{
				"title": "Primary",
				"fees":  []any{map[string]any{"name": "Tuition", "amount": "1T"}},
			},
		},
	}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/tuition", nil, false)
	doc := decodeJSON(t, rec)
	if doc["sectionTitle"] != "Legacy Tuition" {
		t.Errorf("sectionTitle = %v", doc["sectionTitle"])
	}
	card := doc["cards"].([]any)[0].(map[string]any)
	item := card["items"].([]any)[0].(map[string]any)
	if item["label"] != "Tuition" || item["amount"] != "1T" {
		t.Errorf("item = %v", item)
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/status", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeJSON(t, rec)
	if resp["success"] != true || resp["status"] != "ok" {
		t.Errorf("response = %v", resp)
	}
}
