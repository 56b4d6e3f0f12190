package validation

import (
	"strconv"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "below_minimum"
	}
}

// ParseInt parses a form value as int, recording a violation on failure.
// Empty input yields the default.
func ParseInt(field, value string, def int, v Violations) int {
	s := strings.TrimSpace(value)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		v[field] = "not_a_number"
		return def
	}
	return n
}

// ParseFloat parses a form value as float64, recording a violation on failure.
// Empty input yields the default.
func ParseFloat(field, value string, def float64, v Violations) float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v[field] = "not_a_number"
		return def
	}
	return f
}
