package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
	nonDigitRegex        = regexp.MustCompile(`\D`)
)

// NormalizeText lowercases the input, replaces every character outside
// letters/digits/whitespace with a space, collapses whitespace runs, and
// trims. Total function, no failure mode.
func NormalizeText(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// ParsePrice strips every non-digit character and parses the remainder as
// an integer, so "KES 1,200" becomes 1200. An empty remainder yields 0.
func ParsePrice(s string) int {
	digits := nonDigitRegex.ReplaceAllString(s, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
