// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olegiv/scms-go/internal/store"
)

// Store is the section document store. Every section is an independent
// single-document write; there are no multi-key transactions.
type Store struct {
	queries *store.Queries
}

// NewStore creates a section store over the query layer.
func NewStore(queries *store.Queries) *Store {
	return &Store{queries: queries}
}

// Get returns the decoded document for a key, or def when the key has
// never been stored. It never fails for a missing key.
func (s *Store) Get(ctx context.Context, key string, def any) (any, error) {
	row, err := s.queries.GetSection(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting section %q: %w", key, err)
	}

	var doc any
	if err := json.Unmarshal([]byte(row.Data), &doc); err != nil {
		return nil, fmt.Errorf("decoding section %q: %w", key, err)
	}
	return doc, nil
}

// GetObject is Get for sections whose document is known to be an
// object. Legacy non-object shapes fall back to def.
func (s *Store) GetObject(ctx context.Context, key string, def map[string]any) (map[string]any, error) {
	doc, err := s.Get(ctx, key, def)
	if err != nil {
		return nil, err
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return def, nil
	}
	return m, nil
}

// Set upserts the document for a key wholesale. Last writer wins.
func (s *Store) Set(ctx context.Context, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding section %q: %w", key, err)
	}
	if err := s.queries.UpsertSection(ctx, store.UpsertSectionParams{Key: key, Data: string(data)}); err != nil {
		return fmt.Errorf("storing section %q: %w", key, err)
	}
	return nil
}

// EnsureDefault inserts the document only if the key does not exist.
func (s *Store) EnsureDefault(ctx context.Context, key string, def any) error {
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("encoding default for %q: %w", key, err)
	}
	if err := s.queries.EnsureSection(ctx, store.EnsureSectionParams{Key: key, Data: string(data)}); err != nil {
		return fmt.Errorf("seeding section %q: %w", key, err)
	}
	return nil
}
