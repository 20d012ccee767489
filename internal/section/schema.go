// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package section declares the per-section content schemas: the fixed
// set of section keys, each section's default document, its update
// policy (merge or replace), the write-side normalizer and the
// read-side upgrader for legacy stored shapes.
package section

// Section keys. Every editable block of the site is stored under
// exactly one of these.
const (
	KeyBanner          = "banner"
	KeyVice            = "vice"
	KeyMissionVision   = "missionVision"
	KeySuccess         = "success"
	KeyCafeteria       = "cafeteria"
	KeySpecialPrograms = "specialPrograms"
	KeyActivities      = "activities"
	KeyVolunteer       = "volunteer"
	KeyProcess         = "process"
	KeyApplication     = "application"
	KeyTuition         = "tuition"
	KeyNews            = "news"
	KeyFAQ             = "faq"
	KeyContact         = "contact"
	KeyCalendar        = "calendar"
)

// Policy is a section's update policy.
type Policy string

const (
	// PolicyMerge shallow-merges incoming fields over the stored document.
	PolicyMerge Policy = "merge"
	// PolicyReplace rebuilds the whole document from the payload,
	// defaulting missing fields and dropping unknown ones.
	PolicyReplace Policy = "replace"
)

// Schema describes one section's contract at the API boundary.
type Schema struct {
	Key    string
	Route  string // path segment under /api
	Policy Policy

	// Default returns the document seeded when the section is absent.
	Default func() map[string]any

	// Normalize rebuilds a replace-policy document from a raw payload.
	// Returns an error when the payload shape is invalid; the whole
	// write is rejected, no partial application.
	Normalize func(payload any) (map[string]any, error)

	// Sanitize post-processes a merged document (merge policy only).
	Sanitize func(doc map[string]any) map[string]any

	// Upgrade converts a legacy stored shape to the current schema on
	// read, without mutating storage. Nil means the stored document is
	// returned as is.
	Upgrade func(stored any) map[string]any
}

// Registry lists every section schema, in the order the routes are
// registered and the defaults are seeded.
var Registry = []Schema{
	{Key: KeyVice, Route: "vice", Policy: PolicyMerge, Default: defaultVice, Sanitize: sanitizeVice},
	{Key: KeyMissionVision, Route: "mission-vision", Policy: PolicyMerge, Default: defaultMissionVision},
	{Key: KeySuccess, Route: "success", Policy: PolicyMerge, Default: defaultSuccess},
	{Key: KeyCafeteria, Route: "cafeteria", Policy: PolicyMerge, Default: defaultCafeteria},
	{Key: KeySpecialPrograms, Route: "special-programs", Policy: PolicyMerge, Default: defaultSpecialPrograms},
	{Key: KeyBanner, Route: "banner", Policy: PolicyReplace, Default: defaultBanner, Normalize: normalizeBanner},
	{Key: KeyCalendar, Route: "calendar", Policy: PolicyReplace, Default: defaultCalendar, Normalize: normalizeCalendar},
	{Key: KeyActivities, Route: "activities", Policy: PolicyReplace, Default: defaultActivities, Normalize: normalizeActivities},
	{Key: KeyVolunteer, Route: "volunteer", Policy: PolicyReplace, Default: defaultVolunteer, Normalize: normalizeVolunteer},
	{Key: KeyProcess, Route: "process", Policy: PolicyReplace, Default: defaultProcess, Normalize: normalizeProcess},
	{Key: KeyApplication, Route: "application", Policy: PolicyReplace, Default: defaultApplication, Normalize: normalizeApplication},
	{Key: KeyTuition, Route: "tuition", Policy: PolicyReplace, Default: defaultTuition, Normalize: normalizeTuition, Upgrade: upgradeTuition},
	{Key: KeyNews, Route: "news", Policy: PolicyReplace, Default: defaultNews, Normalize: normalizeNews, Upgrade: upgradeNews},
	{Key: KeyFAQ, Route: "faq", Policy: PolicyReplace, Default: defaultFAQ, Normalize: normalizeFAQ, Upgrade: upgradeFAQ},
	{Key: KeyContact, Route: "contact", Policy: PolicyReplace, Default: defaultContact, Normalize: normalizeContact},
}

// ByKey returns the schema for a section key.
func ByKey(key string) (Schema, bool) {
	for _, s := range Registry {
		if s.Key == key {
			return s, true
		}
	}
	return Schema{}, false
}

// ByRoute returns the schema for an API route segment.
func ByRoute(route string) (Schema, bool) {
	for _, s := range Registry {
		if s.Route == route {
			return s, true
		}
	}
	return Schema{}, false
}
