// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/scms-go/internal/auth"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/section"
	"github.com/olegiv/scms-go/internal/store"
)

const (
	testSecret   = "test-secret-0123456789-0123456789-ok"
	testUsername = "admin"
	testPassword = "test-password-123"
)

// testServer is a fully wired API over a temp database.
type testServer struct {
	router http.Handler
	token  string
}

// newTestServer creates a migrated, seeded server with all API routes.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	ctx := context.Background()
	if err := store.SeedAdmin(ctx, db, testUsername, testPassword); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	if err := section.SeedDefaults(ctx, section.NewStore(store.New(db))); err != nil {
		t.Fatalf("failed to seed sections: %v", err)
	}

	tokens := auth.NewTokenManager(testSecret, time.Hour)
	lockout := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit: 1000, // Effectively unlimited for tests
		IPBurst:     1000,
	})
	uploadsDir := t.TempDir()
	h := NewHandler(db, uploadsDir, tokens, lockout, "test")

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(lockout.Middleware())
		r.Post("/admin/login", h.Login)
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		for _, schema := range section.Registry {
			r.Get("/"+schema.Route, h.GetSection(schema))
		}
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			for _, schema := range section.Registry {
				schema := schema
				switch schema.Key {
				case section.KeyBanner:
					r.Post("/"+schema.Route, h.UpdateSection(schema))
					r.Delete("/"+schema.Route, h.DeleteBanner)
				case section.KeyCalendar:
					r.Put("/"+schema.Route, h.UpdateSection(schema))
					r.Post("/"+schema.Route+"/event", h.UpsertCalendarEvent)
				default:
					r.Post("/"+schema.Route, h.UpdateSection(schema))
					if schema.Policy == section.PolicyReplace {
						r.Put("/"+schema.Route, h.UpdateSection(schema))
					}
				}
			}
			r.Get("/sections", h.ListSections)
			r.Post("/upload", h.Upload)
			r.Get("/uploads", h.ListUploads)
		})
	})
	r.Get("/uploads/*", ServeUploads(uploadsDir))

	token, err := tokens.Issue(testUsername)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}

	return &testServer{router: r, token: token}
}

// do runs a request and returns the recorder.
func (s *testServer) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// decodeJSON decodes a response body into a generic map.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return doc
}

// multipartUpload builds a multipart request body with one file field.
func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
