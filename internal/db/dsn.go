package db

import (
	"regexp"
	"strings"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// NormalizeDSN accepts a URL style DSN (postgres://...), a lib/pq key=value
// list, or a bare SQLite file path. It trims quotes and whitespace and, if
// given key=value form, returns it cleaned with sslmode defaulted.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	if IsPostgres(s) && !kvPairRegex.MatchString(s) {
		return s
	}
	if !kvPairRegex.MatchString(s) {
		// SQLite file path (possibly file: URI); use as-is
		return s
	}
	// Collapse multiple spaces
	fields := strings.Fields(s)
	cleaned := strings.Join(fields, " ")
	// Ensure sslmode present (default disable if missing)
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// IsPostgres reports whether the DSN targets Postgres rather than the
// default SQLite file store.
func IsPostgres(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return true
	}
	return kvPairRegex.MatchString(dsn)
}
