// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Calendar event types.
const (
	EventTypeAcademic = "academic"
	EventTypeHoliday  = "holiday"
	EventTypeEvent    = "event"
)

// dateKeyRE validates calendar date keys.
var dateKeyRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDateKey reports whether s is a YYYY-MM-DD calendar key.
func IsValidDateKey(s string) bool {
	return dateKeyRE.MatchString(s)
}

// htmlPolicy sanitizes the few rich-text fields admins can edit.
var htmlPolicy = bluemonday.UGCPolicy()

// str coerces a decoded JSON value to a string, matching the loose
// stringification the editor clients rely on. nil becomes "".
func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return ""
	}
}

// strOr returns the coerced string under key, or fallback when the
// field is absent or null. An explicit empty string is kept.
func strOr(m map[string]any, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	return str(v)
}

// arr returns the array under key, or nil when absent or not an array.
func arr(m map[string]any, key string) []any {
	v, ok := m[key].([]any)
	if !ok {
		return nil
	}
	return v
}

// sub returns the object under key, or an empty map.
func sub(m map[string]any, key string) map[string]any {
	v, ok := m[key].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return v
}

// asObject requires the payload to be a JSON object.
func asObject(payload any) (map[string]any, error) {
	m, ok := payload.(map[string]any)
	if !ok || m == nil {
		return nil, fmt.Errorf("invalid body: expected a JSON object")
	}
	return m, nil
}

// strSlice coerces every element of a payload array to a string.
func strSlice(items []any) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, str(it))
	}
	return out
}

// itemFields rebuilds each element of items keeping only the named
// string fields, coercing values and defaulting missing ones to "".
func itemFields(items []any, fields ...string) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		m, _ := it.(map[string]any)
		rec := make(map[string]any, len(fields))
		for _, f := range fields {
			if m == nil {
				rec[f] = ""
				continue
			}
			rec[f] = strOr(m, f, "")
		}
		out = append(out, rec)
	}
	return out
}

func normalizeBanner(payload any) (map[string]any, error) {
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}
	return map[string]any{"imageUrl": strOr(m, "imageUrl", "")}, nil
}

// sanitizeVice strips dangerous markup from the rich-text signature
// after a merge update.
func sanitizeVice(doc map[string]any) map[string]any {
	if v, ok := doc["signatureHtml"]; ok {
		doc["signatureHtml"] = htmlPolicy.Sanitize(str(v))
	}
	return doc
}

func normalizeActivities(payload any) (map[string]any, error) {
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"title":    strOr(m, "title", "Extracurricular Activities"),
		"subtitle": strOr(m, "subtitle", ""),
		"items":    itemFields(arr(m, "items"), "title", "description", "time", "grades", "imageUrl"),
	}, nil
}

func normalizeVolunteer(payload any) (map[string]any, error) {
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"title":    strOr(m, "title", "Volunteer Programs"),
		"subtitle": strOr(m, "subtitle", ""),
		"items":    itemFields(arr(m, "items"), "title", "description", "imageUrl"),
	}, nil
}

func normalizeProcess(payload any) (map[string]any, error) {
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}
	steps := make([]any, 0)
	for _, it := range arr(m, "steps") {
		sm, _ := it.(map[string]any)
		if sm == nil {
			sm = map[string]any{}
		}
		steps = append(steps, map[string]any{
			"title":       strOr(sm, "title", ""),
			"description": strOr(sm, "description", ""),
			"bullets":     strSlice(arr(sm, "bullets")),
		})
	}
	return map[string]any{
		"title":    strOr(m, "title", ""),
		"subtitle": strOr(m, "subtitle", ""),
		"steps":    steps,
	}, nil
}

func normalizeApplication(payload any) (map[string]any, error) {
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"sectionTitle":      strOr(m, "sectionTitle", ""),
		"sectionSubtitle":   strOr(m, "sectionSubtitle", ""),
		"leftTitle":         strOr(m, "leftTitle", ""),
		"leftText":          strOr(m, "leftText", ""),
		"requirementsTitle": strOr(m, "requirementsTitle", ""),
		"requirementsItems": strSlice(arr(m, "requirementsItems")),
		"cardTitle":         strOr(m, "cardTitle", ""),
		"cardText":          strOr(m, "cardText", ""),
		"buttonText":        strOr(m, "buttonText", ""),
		"buttonUrl":         strOr(m, "buttonUrl", ""),
		"helpText":          strOr(m, "helpText", ""),
	}, nil
}

// tuitionCard rebuilds one tuition card, accepting the legacy
// fees[{name,amount}] shape alongside the current items[{label,amount}].
func tuitionCard(c map[string]any) map[string]any {
	rawItems := arr(c, "items")
	if rawItems == nil {
		for _, f := range arr(c, "fees") {
			fm, _ := f.(map[string]any)
			if fm == nil {
				fm = map[string]any{}
			}
			rawItems = append(rawItems, map[string]any{
				"label":  strOr(fm, "name", strOr(fm, "label", "")),
				"amount": strOr(fm, "amount", ""),
			})
		}
	}
	items := make([]any, 0, len(rawItems))
	for _, it := range rawItems {
		im, _ := it.(map[string]any)
		if im == nil {
			im = map[string]any{}
		}
		items = append(items, map[string]any{
			"label":  strOr(im, "label", strOr(im, "name", "")),
			"amount": strOr(im, "amount", ""),
		})
	}
	return map[string]any{
		"title":    strOr(c, "title", ""),
		"subtitle": strOr(c, "subtitle", ""),
		"items":    items,
	}
}

func normalizeTuition(payload any) (map[string]any, error) {
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}

	rawCards := m["cards"]
	// Some older admin builds send cards as a JSON-encoded string.
	if s, ok := rawCards.(string); ok {
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			rawCards = parsed
		} else {
			rawCards = nil
		}
	}

	cards := make([]any, 0)
	if list, ok := rawCards.([]any); ok {
		for _, c := range list {
			cm, _ := c.(map[string]any)
			if cm == nil {
				cm = map[string]any{}
			}
			cards = append(cards, tuitionCard(cm))
		}
	}

	return map[string]any{
		"sectionTitle":    strOr(m, "sectionTitle", strOr(m, "title", "")),
		"sectionSubtitle": strOr(m, "sectionSubtitle", strOr(m, "subtitle", "")),
		"cards":           cards,
	}, nil
}

// upgradeTuition normalizes a stored legacy tuition document
// (title/subtitle, fees arrays) into the current shape on read.
func upgradeTuition(stored any) map[string]any {
	m, ok := stored.(map[string]any)
	if !ok {
		return defaultTuition()
	}
	cards := make([]any, 0)
	for _, c := range arr(m, "cards") {
		cm, _ := c.(map[string]any)
		if cm == nil {
			cm = map[string]any{}
		}
		cards = append(cards, tuitionCard(cm))
	}
	return map[string]any{
		"sectionTitle":    strOr(m, "sectionTitle", strOr(m, "title", "")),
		"sectionSubtitle": strOr(m, "sectionSubtitle", strOr(m, "subtitle", "")),
		"cards":           cards,
	}
}

func normalizeNews(payload any) (map[string]any, error) {
	// Older admin builds send the items array directly.
	if list, ok := payload.([]any); ok {
		payload = map[string]any{"items": list}
	}
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"sectionTitle":    strOr(m, "sectionTitle", "School News"),
		"sectionSubtitle": strOr(m, "sectionSubtitle", ""),
		"items":           itemFields(arr(m, "items"), "title", "date", "imageUrl", "excerpt", "moreText"),
	}, nil
}

// upgradeNews wraps a stored bare-array news document on read.
func upgradeNews(stored any) map[string]any {
	if list, ok := stored.([]any); ok {
		return map[string]any{
			"sectionTitle":    "School News",
			"sectionSubtitle": "",
			"items":           list,
		}
	}
	m, ok := stored.(map[string]any)
	if !ok {
		return defaultNews()
	}
	items := arr(m, "items")
	if items == nil {
		items = []any{}
	}
	return map[string]any{
		"sectionTitle":    strOr(m, "sectionTitle", "School News"),
		"sectionSubtitle": strOr(m, "sectionSubtitle", ""),
		"items":           items,
	}
}

func normalizeFAQ(payload any) (map[string]any, error) {
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}
	items := make([]any, 0)
	for _, it := range arr(m, "items") {
		im, _ := it.(map[string]any)
		if im == nil {
			im = map[string]any{}
		}
		items = append(items, map[string]any{
			"question": strOr(im, "question", ""),
			// Editor textareas escape newlines on the wire.
			"answer": strings.ReplaceAll(strOr(im, "answer", ""), `\n`, "\n"),
		})
	}
	return map[string]any{
		"sectionTitle":    strOr(m, "sectionTitle", "Frequently Asked Questions"),
		"sectionSubtitle": strOr(m, "sectionSubtitle", "Find answers to common questions"),
		"items":           items,
	}, nil
}

// upgradeFAQ wraps a stored bare-array FAQ document on read.
func upgradeFAQ(stored any) map[string]any {
	if list, ok := stored.([]any); ok {
		return map[string]any{
			"sectionTitle":    "Frequently Asked Questions",
			"sectionSubtitle": "Find answers to common questions",
			"items":           list,
		}
	}
	m, ok := stored.(map[string]any)
	if !ok {
		return defaultFAQ()
	}
	items := arr(m, "items")
	if items == nil {
		items = []any{}
	}
	return map[string]any{
		"sectionTitle":    strOr(m, "sectionTitle", "Frequently Asked Questions"),
		"sectionSubtitle": strOr(m, "sectionSubtitle", "Find answers to common questions"),
		"items":           items,
	}
}

func normalizeContact(payload any) (map[string]any, error) {
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}
	address := sub(m, "address")
	phones := sub(m, "phones")
	emails := sub(m, "emails")
	socials := sub(m, "socials")
	return map[string]any{
		"sectionTitle":    strOr(m, "sectionTitle", "Contact Information"),
		"sectionSubtitle": strOr(m, "sectionSubtitle", "Get in touch with us"),
		"address": map[string]any{
			"org":   strOr(address, "org", ""),
			"line1": strOr(address, "line1", ""),
			"line2": strOr(address, "line2", ""),
		},
		"phones": map[string]any{
			"mainOffice": strOr(phones, "mainOffice", ""),
			"admissions": strOr(phones, "admissions", ""),
		},
		"emails": map[string]any{
			"general":    strOr(emails, "general", ""),
			"admissions": strOr(emails, "admissions", ""),
			"registrar":  strOr(emails, "registrar", ""),
		},
		"socials": map[string]any{
			"facebook":  strOr(socials, "facebook", "#"),
			"instagram": strOr(socials, "instagram", "#"),
			"email":     strOr(socials, "email", ""),
		},
	}, nil
}

// NormalizeCalendarEvent rebuilds one calendar event value. Unknown
// types coerce to the generic "event" type.
func NormalizeCalendarEvent(v any) map[string]any {
	m, _ := v.(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	typ := strOr(m, "type", EventTypeEvent)
	switch typ {
	case EventTypeAcademic, EventTypeHoliday, EventTypeEvent:
	default:
		typ = EventTypeEvent
	}
	return map[string]any{
		"type":     typ,
		"title":    strOr(m, "title", ""),
		"fullDesc": strOr(m, "fullDesc", ""),
	}
}

func normalizeCalendar(payload any) (map[string]any, error) {
	m, err := asObject(payload)
	if err != nil {
		return nil, err
	}
	rawEvents, ok := m["events"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf(`invalid calendar format: expected {"events": {...}}`)
	}

	events := make(map[string]any, len(rawEvents))
	for k, v := range rawEvents {
		if !IsValidDateKey(k) {
			return nil, fmt.Errorf("invalid date key: %s", k)
		}
		events[k] = NormalizeCalendarEvent(v)
	}
	return map[string]any{"events": events}, nil
}
