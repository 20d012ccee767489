// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements application services on top of the store
// layer. The upload service validates, processes and records image
// uploads referenced by content sections.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/scms-go/internal/imaging"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/util"
)

// Upload limits
const (
	MaxUploadSize    = 10 * 1024 * 1024 // 10MB
	DefaultUploadDir = "./uploads"
)

// AllowedMimeTypes defines the MIME types that can be uploaded.
// Only images are accepted; sections reference them by URL.
var AllowedMimeTypes = map[string]bool{
	imaging.MimeTypeJPEG: true,
	imaging.MimeTypePNG:  true,
	imaging.MimeTypeGIF:  true,
	imaging.MimeTypeWebP: true,
}

// UploadService handles image upload operations.
type UploadService struct {
	db        *sql.DB
	processor *imaging.Processor
	uploadDir string
}

// NewUploadService creates a new upload service.
func NewUploadService(db *sql.DB, uploadDir string) *UploadService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &UploadService{
		db:        db,
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
	}
}

// Upload validates and stores an uploaded image, creating a database
// record for it. The stored filename is the sanitized original name
// prefixed with the upload timestamp in milliseconds so repeated
// uploads of the same file never collide.
func (s *UploadService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*store.Upload, error) {
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	mimeType := header.Header.Get("Content-Type")
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	// Some clients send no useful part type; fall back to the extension
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = getMimeTypeFromExtension(header.Filename)
	}
	if !AllowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	// Verify the content actually looks like an image before processing
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	detected := s.processor.DetectMimeType(head[:n])
	if !s.processor.IsImage(detected) {
		return nil, fmt.Errorf("file content is not a supported image")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	now := time.Now()
	filename := fmt.Sprintf("%d_%s", now.UnixMilli(), util.SanitizeFilename(header.Filename))

	processResult, err := s.processor.ProcessImage(file, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}

	// Thumbnail failures are not fatal; the original is already stored
	if _, err := s.processor.CreateThumbnail(processResult.FilePath, filename); err != nil {
		slog.Warn("failed to create thumbnail", "filename", filename, "error", err)
	}

	queries := store.New(s.db)
	upload, err := queries.CreateUpload(ctx, store.CreateUploadParams{
		Uuid:         uuid.New().String(),
		URL:          "/uploads/" + filename,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     processResult.MimeType,
		Size:         processResult.Size,
		Width:        sql.NullInt64{Int64: int64(processResult.Width), Valid: true},
		Height:       sql.NullInt64{Int64: int64(processResult.Height), Valid: true},
	})
	if err != nil {
		// Clean up the stored files on record failure
		_ = s.processor.DeleteFiles(filename)
		return nil, fmt.Errorf("failed to create upload record: %w", err)
	}

	return &upload, nil
}

// UploadList is a page of upload records with the total count.
type UploadList struct {
	Uploads []store.Upload
	Total   int64
	Page    int
	PerPage int
}

// List returns a page of upload records, newest first.
func (s *UploadService) List(ctx context.Context, page, perPage int) (*UploadList, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	queries := store.New(s.db)
	total, err := queries.CountUploads(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count uploads: %w", err)
	}

	uploads, err := queries.ListUploads(ctx, store.ListUploadsParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	return &UploadList{
		Uploads: uploads,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func getMimeTypeFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return imaging.MimeTypeJPEG
	case ".png":
		return imaging.MimeTypePNG
	case ".gif":
		return imaging.MimeTypeGIF
	case ".webp":
		return imaging.MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}
