package parser

import (
	"regexp"
	"strings"
)

// Format represents a detected chat export format.
type Format string

const (
	FormatStructured Format = "structured"
	FormatGeneric    Format = "generic"
)

// ws matches one whitespace rune, including Unicode space separators such as
// the narrow no-break space some exporters put before AM/PM.
const ws = `[\s\v\x{85}\p{Z}]`

// headerShape matches a structured header anywhere in the text.
var headerShape = regexp.MustCompile(`(?i)\d{1,2}[/-]\d{1,2}[/-]\d{2,4},?` + ws + `*\d{1,2}:\d{2}` + ws + `*(?:[ap]m)?` + ws + `*-` + ws + `*[^:]+:`)

// exportMarkers are boilerplate phrases only the structured exporter writes.
var exportMarkers = []string{
	"messages and calls are end-to-end encrypted",
	"<media omitted>",
	"this message was deleted",
}

// DetectFormat determines whether raw follows the structured
// "date, time - sender: body" export convention.
func DetectFormat(raw string) Format {
	if raw == "" {
		return FormatGeneric
	}
	if headerShape.MatchString(raw) {
		return FormatStructured
	}

	lower := strings.ToLower(raw)
	for _, marker := range exportMarkers {
		if strings.Contains(lower, marker) {
			return FormatStructured
		}
	}
	return FormatGeneric
}

// LooksStructured reports whether raw should take the structured path.
func LooksStructured(raw string) bool {
	return DetectFormat(raw) == FormatStructured
}
