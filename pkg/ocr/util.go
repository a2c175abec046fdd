package ocr

import "strings"

// Snippet returns a shortened, single-line version of text for logging.
func Snippet(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
