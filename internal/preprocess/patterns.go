package preprocess

import (
	"regexp"
)

// RedactionPattern defines a built-in pattern for personal data detection.
type RedactionPattern struct {
	Name        string
	Regex       *regexp.Regexp
	Type        string // placeholder prefix, as in [EMAIL:1f0c]
	Description string
}

// redactionTable lists the built-in patterns in default application order.
// Card numbers must run before the broader phone pattern.
var redactionTable = []RedactionPattern{
	{
		Name:        "jwt",
		Regex:       regexp.MustCompile(`\beyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*\b`),
		Type:        "JWT",
		Description: "Signed tokens pasted from browsers or apps",
	},
	{
		Name:        "api_key",
		Regex:       regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|token|secret|password|passwd|pwd|otp)["\s]*[:=]["\s]*[a-zA-Z0-9_\-]{6,}`),
		Type:        "SECRET",
		Description: "Keys, passwords and one-time codes shared as key: value",
	},
	{
		Name:        "email",
		Regex:       regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		Type:        "EMAIL",
		Description: "Mail addresses",
	},
	{
		Name:        "credit_card",
		Regex:       regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`),
		Type:        "CC",
		Description: "Sixteen-digit card numbers, grouped or not",
	},
	{
		// +91 98765 43210, (555) 123-4567, 555.123.4567
		Name:        "phone",
		Regex:       regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?(?:\(\d{3}\)[\s.-]?\d{3}[\s.-]?\d{4}|\d{3}[\s.-]?\d{3}[\s.-]?\d{4}|\d{5}[\s.-]?\d{5})\b`),
		Type:        "PHONE",
		Description: "Phone numbers with optional country code",
	},
	{
		Name:        "ipv4",
		Regex:       regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\.){3}(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\b`),
		Type:        "IPV4",
		Description: "Dotted-quad addresses",
	},
}

// BuiltInPatterns indexes redactionTable by name.
var BuiltInPatterns = indexPatterns(redactionTable)

func indexPatterns(table []RedactionPattern) map[string]RedactionPattern {
	m := make(map[string]RedactionPattern, len(table))
	for _, p := range table {
		m[p.Name] = p
	}
	return m
}

// DefaultPatterns returns the names of every built-in pattern in the order
// they are applied.
func DefaultPatterns() []string {
	names := make([]string, 0, len(redactionTable))
	for _, p := range redactionTable {
		names = append(names, p.Name)
	}
	return names
}

// GetPatterns resolves names to patterns, keeping the caller's order.
// Names that are not built in are skipped.
func GetPatterns(names []string) []RedactionPattern {
	out := make([]RedactionPattern, 0, len(names))
	for _, name := range names {
		if p, ok := BuiltInPatterns[name]; ok {
			out = append(out, p)
		}
	}
	return out
}
