package service

import (
	"regexp"
	"strings"
	"time"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// cleanStr trims a string and clamps it to max runes.
func cleanStr(s string, max int) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > max {
		return string(r[:max])
	}
	return s
}

// sanitizeText trims, strips HTML tags and clamps free-text input.
func sanitizeText(s string, max int) string {
	return cleanStr(htmlTagPattern.ReplaceAllString(strings.TrimSpace(s), ""), max)
}

// normalizeEmail lowercases and trims an email address.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validEmail reports whether s matches the accepted email shape.
func validEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// parseTimeOrNil parses an RFC 3339 timestamp, returning nil for empty input
// and ok=false for garbage.
func parseTimeOrNil(s string) (*time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return nil, false
	}
	t = t.UTC()
	return &t, true
}

// clampPage normalizes pagination parameters: page >= 1, 1 <= pageSize <= 100
// with a default of 20.
func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
