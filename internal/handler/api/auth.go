// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/auth"
	"github.com/olegiv/scms-go/internal/store"
)

// loginRequest is the body of POST /admin/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /admin/login. Unknown usernames and wrong
// passwords produce the same generic error so the endpoint does not
// leak which accounts exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	if locked, remaining := h.lockout.IsAccountLocked(req.Username); locked {
		slog.Warn("login attempt on locked account", "category", "auth", "username", req.Username)
		WriteError(w, http.StatusTooManyRequests,
			fmt.Sprintf("Account temporarily locked. Try again in %s.", remaining.Round(time.Second)))
		return
	}

	user, err := h.queries.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to load user", "category", "auth", "error", err)
			WriteError(w, http.StatusInternalServerError, "login failed")
			return
		}
		h.failLogin(w, req.Username)
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.failLogin(w, req.Username)
		return
	}

	h.lockout.RecordSuccessfulLogin(req.Username)

	// Upgrade hashes written with older parameters on successful login
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				ID:           user.ID,
				PasswordHash: newHash,
			}); err != nil {
				slog.Warn("failed to upgrade password hash", "category", "auth", "error", err)
			}
		}
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		slog.Error("failed to issue token", "category", "auth", "error", err)
		WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	slog.Info("admin login", "category", "auth", "username", user.Username)

	WriteSuccess(w, map[string]any{"token": token})
}

func (h *Handler) failLogin(w http.ResponseWriter, username string) {
	if locked, duration := h.lockout.RecordFailedAttempt(username); locked {
		WriteError(w, http.StatusTooManyRequests,
			fmt.Sprintf("Account temporarily locked for %s due to repeated failures.", duration))
		return
	}
	WriteError(w, http.StatusUnauthorized, "Invalid username or password")
}
