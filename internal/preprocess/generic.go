package preprocess

import (
	"regexp"
	"strings"
)

var (
	bracketTokenRegex = regexp.MustCompile(`\[.*?\]`)
	isoTimestampRegex = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)
)

// CleanGeneric is the fallback for text that is not a structured export.
// It collapses whitespace, then drops bracketed metadata and
// "YYYY-MM-DD HH:MM:SS" timestamps. Senders are left untouched.
func CleanGeneric(raw string) string {
	s := blankRunRegex.ReplaceAllLiteralString(raw, "\n")
	s = whitespaceRegex.ReplaceAllLiteralString(s, " ")
	s = bracketTokenRegex.ReplaceAllLiteralString(s, "")
	s = isoTimestampRegex.ReplaceAllLiteralString(s, "")
	return strings.TrimSpace(s)
}
