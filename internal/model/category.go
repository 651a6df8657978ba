package model

import "strings"

// CategoryKey is the normalized identifier used to index every
// category-keyed structure. Keys are derived from sanitized display names,
// never from raw user input, so a display name can not be accidentally used
// where a key is required.
type CategoryKey string

// FallbackKey is the always-present category that absorbs amounts when no
// allocation percentages are configured.
const FallbackKey CategoryKey = "other"

// FallbackDisplay is the display name of the fallback category.
const FallbackDisplay = "Other"

// NormalizeCategory converts a display name to its CategoryKey: trimmed,
// case-folded, empty mapping to the fallback key.
func NormalizeCategory(display string) CategoryKey {
	k := strings.ToLower(strings.TrimSpace(display))
	if k == "" {
		return FallbackKey
	}
	return CategoryKey(k)
}

// SanitizeName cleans a raw category name for display and storage: keeps
// letters, digits and spaces, collapses space runs, trims the edges. An empty
// result becomes "Category".
func SanitizeName(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	lastSpace := false
	for _, r := range raw {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if b.Len() > 0 && !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case isAlnum(r):
			b.WriteRune(r)
			lastSpace = false
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "Category"
	}
	return out
}

func isAlnum(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
