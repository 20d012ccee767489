// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/store"
)

// uploadResponse is the JSON shape of one upload record.
type uploadResponse struct {
	UUID         string `json:"uuid"`
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	Width        int64  `json:"width,omitempty"`
	Height       int64  `json:"height,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

func toUploadResponse(u store.Upload) uploadResponse {
	resp := uploadResponse{
		UUID:         u.Uuid,
		URL:          u.URL,
		Filename:     u.Filename,
		OriginalName: u.OriginalName,
		MimeType:     u.MimeType,
		Size:         u.Size,
		CreatedAt:    u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if u.Width.Valid {
		resp.Width = u.Width.Int64
	}
	if u.Height.Valid {
		resp.Height = u.Height.Int64
	}
	return resp
}

// Upload handles POST /api/upload. The image is sent as multipart
// form data under the "image" field ("file" also accepted). Responds
// with the public URL of the stored file.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+1024*1024)

	file, header, err := r.FormFile("image")
	if err != nil {
		file, header, err = r.FormFile("file")
	}
	if err != nil {
		WriteError(w, http.StatusBadRequest, "no image file provided")
		return
	}
	defer func() { _ = file.Close() }()

	upload, err := h.uploads.Upload(r.Context(), file, header)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "not allowed") || strings.Contains(msg, "not a supported image") ||
			strings.Contains(msg, "exceeds maximum") || strings.Contains(msg, "unsupported image format") {
			WriteError(w, http.StatusBadRequest, msg)
			return
		}
		slog.Error("upload failed", "filename", header.Filename, "error", err)
		WriteError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	slog.Info("image uploaded", "category", "upload", "filename", upload.Filename, "size", upload.Size)

	// The admin client reads imageUrl; url is kept as an alias
	WriteSuccess(w, map[string]any{
		"imageUrl": upload.URL,
		"url":      upload.URL,
		"upload":   toUploadResponse(*upload),
	})
}

// ListUploads handles GET /api/uploads with page/perPage query params.
func (h *Handler) ListUploads(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))

	list, err := h.uploads.List(r.Context(), page, perPage)
	if err != nil {
		slog.Error("failed to list uploads", "error", err)
		WriteError(w, http.StatusInternalServerError, "failed to list uploads")
		return
	}

	uploads := make([]uploadResponse, 0, len(list.Uploads))
	for _, u := range list.Uploads {
		uploads = append(uploads, toUploadResponse(u))
	}

	WriteSuccess(w, map[string]any{
		"uploads": uploads,
		"total":   list.Total,
		"page":    list.Page,
		"perPage": list.PerPage,
	})
}
