package nlp

import "strings"

// Normalize lower-cases and trims raw input. Empty output for empty input is
// valid; this never fails.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
