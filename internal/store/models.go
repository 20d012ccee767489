// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// Section is a named, independently editable block of site content.
// Data holds the section's JSON document as stored.
type Section struct {
	Key       string
	Data      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Upload is the metadata record for an accepted file. It is purely
// informational; the authoritative reference is the URL embedded in
// whatever section document uses the file.
type Upload struct {
	ID           int64
	Uuid         string
	URL          string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Width        sql.NullInt64
	Height       sql.NullInt64
	CreatedAt    time.Time
}

// User is an admin credential.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Event is an audit log entry written by the logging handler.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
