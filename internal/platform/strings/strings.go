// Package strings provides string helpers shared across packages
package strings

import (
	std "strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Ellipsis is appended by Ellipsize when text is cut
const Ellipsis = "..."

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// FirstNonEmpty returns the first argument with non whitespace content
func FirstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if std.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /api or /meta
// ensures a single leading slash and no trailing slash except for the root itself
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Ptr returns a pointer to s, or nil if s is empty
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Len counts characters (runes) after NFC normalization
func Len(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// Ellipsize limits s to max characters (runes, after NFC normalization)
// when cut, the result keeps max-3 characters followed by Ellipsis so it is exactly max long
// s within the limit is returned unchanged
func Ellipsize(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := norm.NFC.String(s)
	if utf8.RuneCountInString(n) <= max {
		return s
	}
	keep := max - len(Ellipsis)
	if keep <= 0 {
		return string([]rune(Ellipsis)[:max])
	}
	return string([]rune(n)[:keep]) + Ellipsis
}
