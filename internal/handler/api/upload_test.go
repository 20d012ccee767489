// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func (s *testServer) doUpload(t *testing.T, field, filename string, content []byte, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartUpload(t, field, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestUploadImage(t *testing.T) {
	s := newTestServer(t)

	rec := s.doUpload(t, "image", "class photo.png", testPNG(t, 64, 48), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeJSON(t, rec)
	if resp["success"] != true {
		t.Fatalf("response = %v", resp)
	}
	// The admin client reads imageUrl
	imageURL, ok := resp["imageUrl"].(string)
	if !ok || !strings.HasPrefix(imageURL, "/uploads/") {
		t.Errorf("imageUrl = %v", resp["imageUrl"])
	}
	url := resp["url"].(string)
	if url != imageURL {
		t.Errorf("url = %q, imageUrl = %q", url, imageURL)
	}
	if !strings.HasSuffix(url, "_class_photo.png") {
		t.Errorf("url = %q, want timestamp-prefixed sanitized name", url)
	}

	upload := resp["upload"].(map[string]any)
	if upload["originalName"] != "class photo.png" {
		t.Errorf("originalName = %v", upload["originalName"])
	}
	if upload["mimeType"] != "image/png" {
		t.Errorf("mimeType = %v", upload["mimeType"])
	}
	if upload["width"].(float64) != 64 || upload["height"].(float64) != 48 {
		t.Errorf("dimensions = %vx%v", upload["width"], upload["height"])
	}
}

func TestUploadedFileServedVerbatim(t *testing.T) {
	s := newTestServer(t)
	content := testPNG(t, 32, 32)

	rec := s.doUpload(t, "image", "logo.png", content, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	imageURL := decodeJSON(t, rec)["imageUrl"].(string)

	// Fetching the returned URL yields exactly the uploaded bytes
	rec = s.do(t, http.MethodGet, imageURL, nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d", imageURL, rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), content) {
		t.Errorf("served %d bytes differ from uploaded %d bytes", rec.Body.Len(), len(content))
	}

	// Traversal outside the uploads directory is refused
	req := httptest.NewRequest(http.MethodGet, "/uploads/..%2f..%2fetc%2fpasswd", nil)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK {
		t.Errorf("traversal request status = %d", rec.Code)
	}
}

func TestUploadFileFieldFallback(t *testing.T) {
	s := newTestServer(t)

	rec := s.doUpload(t, "file", "photo.png", testPNG(t, 8, 8), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	s := newTestServer(t)

	rec := s.doUpload(t, "image", "notes.txt", []byte("just some text"), true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	// Image extension but text content is also rejected
	rec = s.doUpload(t, "image", "fake.png", []byte("still just text"), true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadMissingFile(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartUpload(t, "unrelated", "x.png", testPNG(t, 4, 4))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+s.token)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListUploads(t *testing.T) {
	s := newTestServer(t)

	for _, name := range []string{"a.png", "b.png"} {
		rec := s.doUpload(t, "image", name, testPNG(t, 8, 8), true)
		if rec.Code != http.StatusOK {
			t.Fatalf("upload %s status = %d", name, rec.Code)
		}
	}

	rec := s.do(t, http.MethodGet, "/api/uploads", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeJSON(t, rec)
	if resp["total"].(float64) != 2 {
		t.Errorf("total = %v", resp["total"])
	}
	uploads := resp["uploads"].([]any)
	if len(uploads) != 2 {
		t.Errorf("uploads = %v", uploads)
	}

	// Pagination
	rec = s.do(t, http.MethodGet, "/api/uploads?page=1&perPage=1", nil, true)
	resp = decodeJSON(t, rec)
	if len(resp["uploads"].([]any)) != 1 {
		t.Errorf("paged uploads = %v", resp["uploads"])
	}
	if resp["perPage"].(float64) != 1 {
		t.Errorf("perPage = %v", resp["perPage"])
	}
}
