// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// FormString returns the trimmed form value for key
func FormString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormInt parses key as an integer clamped to [min, max]. A missing or
// non-numeric value yields def.
func FormInt(r *http.Request, key string, def, min, max int) int {
	n, err := strconv.Atoi(FormString(r, key))
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// FormBool reports whether a checkbox-style field is set
func FormBool(r *http.Request, key string) bool {
	switch strings.ToLower(FormString(r, key)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
