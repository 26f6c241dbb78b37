package services

import "strings"

// NormalizeText collapses every run of whitespace into a single space and
// trims both ends.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
