package advisor

import (
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultAIScore = 50
	// missingElapsedHours is used whenever a timestamp is absent or unparseable.
	missingElapsedHours = 24
)

// Layouts accepted by ElapsedHours, tried in order. Naive layouts are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ClampScore rounds v to the nearest integer and clamps it to [0, 100]. NaN becomes 0.
func ClampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	rounded := math.Round(v)
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return int(rounded)
}

// ParseTimestamp parses an ISO-8601 style timestamp. ok is false for empty or unparseable input.
func ParseTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, ts); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ElapsedHours returns whole hours between ts and now, rounded and never negative.
// Missing or unparseable timestamps count as 24 hours.
func ElapsedHours(ts string, now time.Time) int {
	parsed, ok := ParseTimestamp(ts)
	if !ok {
		return missingElapsedHours
	}
	hours := math.Round(now.Sub(parsed).Hours())
	if hours < 0 {
		return 0
	}
	return int(hours)
}

// NormalizeText lower-cases s, strips diacritics and trims surrounding space.
// It is idempotent.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		stripped = strings.ToLower(s)
	}
	return strings.TrimSpace(stripped)
}

// FirstName returns the first whitespace-separated token of name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

func baseScore(lead LeadSnapshot) int {
	if lead.AIScore == nil {
		return defaultAIScore
	}
	return ClampScore(*lead.AIScore)
}

// hoursSinceUpdate falls back to the creation time when the lead was never updated.
func hoursSinceUpdate(lead LeadSnapshot, now time.Time) int {
	if strings.TrimSpace(lead.UpdatedAt) != "" {
		return ElapsedHours(lead.UpdatedAt, now)
	}
	return ElapsedHours(lead.CreatedAt, now)
}
