// Package params sanitizes raw listing parameters (filters, sort,
// pagination) before they reach the query builders. Field whitelists are
// owned by the entity packages and passed in explicitly.
package params

import (
	"strconv"
	"strings"
)

// Pagination bounds.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Sort is a sanitized sort specification. The zero value means
// "no explicit sort" and listings fall back to storage order.
type Sort struct {
	Field     string
	Direction string // "ASC" or "DESC"
}

// IsZero reports whether no sort was requested.
func (s Sort) IsZero() bool {
	return s.Field == ""
}

// OrderBy renders the sort as an ORDER BY clause fragment.
func (s Sort) OrderBy() string {
	if s.IsZero() {
		return ""
	}
	return s.Field + " " + s.Direction
}

// SanitizeFilters restricts raw to whitelisted keys and drops empty values.
func SanitizeFilters(raw map[string]string, allowed []string) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		allowedSet[f] = struct{}{}
	}

	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if value == "" {
			continue
		}
		if _, ok := allowedSet[key]; ok {
			out[key] = value
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// SanitizeSort parses a raw sort expression against a field whitelist.
// Accepted forms: "field", "-field" (descending), "field:asc", "field:desc".
// Anything else, including a non-whitelisted field, yields the zero Sort.
func SanitizeSort(raw string, allowed []string) Sort {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sort{}
	}

	direction := "ASC"
	field := raw

	switch {
	case strings.HasPrefix(raw, "-"):
		direction = "DESC"
		field = strings.TrimPrefix(raw, "-")
	case strings.HasPrefix(raw, "+"):
		field = strings.TrimPrefix(raw, "+")
	case strings.Contains(raw, ":"):
		parts := strings.SplitN(raw, ":", 2)
		field = parts[0]
		if strings.EqualFold(parts[1], "desc") {
			direction = "DESC"
		}
	}

	field = strings.TrimSpace(field)
	for _, f := range allowed {
		if f == field {
			return Sort{Field: field, Direction: direction}
		}
	}

	return Sort{}
}

// SanitizePagination parses raw perPage/page values with defaults and bounds.
// Pages are 1-based; out-of-range input falls back to the defaults.
func SanitizePagination(rawPerPage, rawPage string) (perPage, page int) {
	perPage = DefaultPerPage
	page = 1

	if v, err := strconv.Atoi(rawPerPage); err == nil && v > 0 {
		perPage = v
		if perPage > MaxPerPage {
			perPage = MaxPerPage
		}
	}

	if v, err := strconv.Atoi(rawPage); err == nil && v > 0 {
		page = v
	}

	return perPage, page
}

// Offset converts a 1-based page into a SQL offset.
func Offset(perPage, page int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * perPage
}
