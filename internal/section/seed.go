// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import (
	"context"
	"fmt"
	"log/slog"
)

// SeedDefaults inserts every registered section's default document if
// the key is absent. Idempotent; runs on every boot.
func SeedDefaults(ctx context.Context, s *Store) error {
	for _, schema := range Registry {
		if err := s.EnsureDefault(ctx, schema.Key, schema.Default()); err != nil {
			return fmt.Errorf("seeding defaults: %w", err)
		}
	}
	slog.Info("section defaults ensured", "sections", len(Registry))
	return nil
}
