// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"path/filepath"
	"strings"
)

// ServeUploads serves files from the uploads directory with path
// containment checks and a modest cache lifetime.
func ServeUploads(uploadsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqPath := strings.TrimPrefix(r.URL.Path, "/uploads/")

		absBase, err := filepath.Abs(uploadsDir)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		absFile := filepath.Join(absBase, filepath.FromSlash(reqPath))

		// Verify containment using filepath.Rel
		rel, err := filepath.Rel(absBase, absFile)
		if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=604800")
		http.ServeFile(w, r, absFile)
	}
}
