// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/olegiv/scms-go/internal/auth"
)

func TestSeedAdmin(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := SeedAdmin(ctx, db, "admin", "first-password"); err != nil {
		t.Fatalf("SeedAdmin failed: %v", err)
	}

	q := New(db)
	user, err := q.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}

	ok, err := auth.CheckPassword("first-password", user.PasswordHash)
	if err != nil || !ok {
		t.Errorf("seeded password does not verify: ok=%v err=%v", ok, err)
	}

	// A second seed with different credentials must not replace the existing user
	if err := SeedAdmin(ctx, db, "other", "second-password"); err != nil {
		t.Fatalf("SeedAdmin failed: %v", err)
	}

	n, err := q.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if n != 1 {
		t.Errorf("user count = %d, want 1", n)
	}
}
