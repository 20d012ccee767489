// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB / *sql.Tx the query layer needs.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries wraps a database handle with typed query methods.
type Queries struct {
	db DBTX
}

// New creates a Queries instance for the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// GetSection returns the stored row for a section key.
func (q *Queries) GetSection(ctx context.Context, key string) (Section, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT key, data, created_at, updated_at FROM sections WHERE key = ?`, key)
	var s Section
	err := row.Scan(&s.Key, &s.Data, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// UpsertSectionParams holds parameters for UpsertSection.
type UpsertSectionParams struct {
	Key  string
	Data string
}

// UpsertSection replaces a section's document wholesale. Last writer wins.
func (q *Queries) UpsertSection(ctx context.Context, arg UpsertSectionParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO sections (key, data, created_at, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		arg.Key, arg.Data)
	return err
}

// EnsureSectionParams holds parameters for EnsureSection.
type EnsureSectionParams struct {
	Key  string
	Data string
}

// EnsureSection inserts a section only if the key does not exist yet.
// Idempotent, safe to call on every boot.
func (q *Queries) EnsureSection(ctx context.Context, arg EnsureSectionParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sections (key, data) VALUES (?, ?)`,
		arg.Key, arg.Data)
	return err
}

// ListSectionKeys returns all stored section keys.
func (q *Queries) ListSectionKeys(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT key FROM sections ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// CreateUploadParams holds parameters for CreateUpload.
type CreateUploadParams struct {
	Uuid         string
	URL          string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Width        sql.NullInt64
	Height       sql.NullInt64
}

// CreateUpload inserts an upload metadata record.
func (q *Queries) CreateUpload(ctx context.Context, arg CreateUploadParams) (Upload, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO uploads (uuid, url, filename, original_name, mime_type, size, width, height)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, uuid, url, filename, original_name, mime_type, size, width, height, created_at`,
		arg.Uuid, arg.URL, arg.Filename, arg.OriginalName, arg.MimeType, arg.Size, arg.Width, arg.Height)
	var u Upload
	err := row.Scan(&u.ID, &u.Uuid, &u.URL, &u.Filename, &u.OriginalName,
		&u.MimeType, &u.Size, &u.Width, &u.Height, &u.CreatedAt)
	return u, err
}

// ListUploadsParams holds parameters for ListUploads.
type ListUploadsParams struct {
	Limit  int64
	Offset int64
}

// ListUploads returns upload records, newest first.
func (q *Queries) ListUploads(ctx context.Context, arg ListUploadsParams) ([]Upload, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, uuid, url, filename, original_name, mime_type, size, width, height, created_at
		FROM uploads ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []Upload
	for rows.Next() {
		var u Upload
		if err := rows.Scan(&u.ID, &u.Uuid, &u.URL, &u.Filename, &u.OriginalName,
			&u.MimeType, &u.Size, &u.Width, &u.Height, &u.CreatedAt); err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}

// CountUploads returns the total number of upload records.
func (q *Queries) CountUploads(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM uploads`).Scan(&n)
	return n, err
}

// GetUserByUsername returns the credential row for a username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users WHERE username = ?`, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// CountUsers returns the number of credential rows.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// CreateUserParams holds parameters for CreateUser.
type CreateUserParams struct {
	Username     string
	PasswordHash string
}

// CreateUser inserts a credential row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES (?, ?)
		RETURNING id, username, password_hash, created_at, updated_at`,
		arg.Username, arg.PasswordHash)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UpdateUserPasswordParams holds parameters for UpdateUserPassword.
type UpdateUserPasswordParams struct {
	ID           int64
	PasswordHash string
}

// UpdateUserPassword replaces a user's stored password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		arg.PasswordHash, arg.ID)
	return err
}

// CreateEventParams holds parameters for CreateEvent.
type CreateEventParams struct {
	Level    string
	Category string
	Message  string
	Metadata string
}

// CreateEvent inserts an audit event row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, metadata) VALUES (?, ?, ?, ?)`,
		arg.Level, arg.Category, arg.Message, arg.Metadata)
	return err
}

// ListRecentEvents returns the newest audit events.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, level, category, message, metadata, created_at
		FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
