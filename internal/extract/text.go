package extract

import "strings"

// CleanText collapses every run of whitespace (spaces, tabs, newlines) to a
// single space and trims the ends. Cleaning is idempotent and never fails;
// an empty input yields an empty string.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
