// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// upload filename sanitization with Unicode normalization support.
package util

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// whitespaceRegex matches runs of whitespace
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// unsafeRegex matches characters not allowed in stored filenames
	unsafeRegex = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	// multipleUnderscores matches consecutive underscores
	multipleUnderscores = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename converts an uploaded file's original name into a
// safe name for disk storage and URLs. Path components are stripped,
// Unicode is transliterated to ASCII, whitespace becomes underscores
// and anything else unsafe is removed.
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	// Decompose accents, then transliterate what remains
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if normalized, _, err := transform.String(t, stem); err == nil {
		stem = normalized
	}
	stem = unidecode.Unidecode(stem)

	stem = whitespaceRegex.ReplaceAllString(stem, "_")
	stem = unsafeRegex.ReplaceAllString(stem, "")
	stem = multipleUnderscores.ReplaceAllString(stem, "_")
	stem = strings.Trim(stem, "._-")

	ext = unsafeRegex.ReplaceAllString(ext, "")

	if stem == "" {
		stem = "file"
	}
	return stem + ext
}
