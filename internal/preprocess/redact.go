package preprocess

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Redactor replaces personal data in message bodies with placeholders that
// stay stable within one transcript, so "the same email appears twice" is
// still visible after redaction. Distinct values never share a placeholder:
// when a short hash prefix is already taken, a longer one is used.
//
// A Redactor is not safe for concurrent use; the pipeline creates one per run.
type Redactor struct {
	enabled  bool
	patterns []RedactionPattern
	hashMap  map[string]string // normalized value -> placeholder
	owners   map[string]string // placeholder -> normalized value
}

// placeholderHexLen is the default hash prefix length, in hex digits.
const placeholderHexLen = 4

// NewRedactor creates a new Redactor. Unknown or empty pattern lists fall
// back to DefaultPatterns. If enabled is false, Redact returns text unchanged.
func NewRedactor(enabled bool, patternNames []string) *Redactor {
	patterns := GetPatterns(patternNames)
	if len(patterns) == 0 {
		patterns = GetPatterns(DefaultPatterns())
	}

	return &Redactor{
		enabled:  enabled,
		patterns: patterns,
		hashMap:  make(map[string]string),
		owners:   make(map[string]string),
	}
}

// Redact replaces every match of the configured patterns.
//
//	"mail me at Ana@Example.com" -> "mail me at [EMAIL:1f0c]"
func (r *Redactor) Redact(text string) string {
	result, _ := r.RedactAndCount(text)
	return result
}

// RedactAndCount redacts text and returns the number of replacements made.
func (r *Redactor) RedactAndCount(text string) (string, int) {
	if !r.enabled || len(r.patterns) == 0 {
		return text, 0
	}

	count := 0
	result := text
	for _, pattern := range r.patterns {
		result = pattern.Regex.ReplaceAllStringFunc(result, func(match string) string {
			count++
			return r.placeholder(match, pattern.Type)
		})
	}
	return result, count
}

// placeholder returns the same placeholder for equal normalized values and
// different placeholders for different ones.
func (r *Redactor) placeholder(value, patternType string) string {
	key := patternType + "\x00" + NormalizeValue(value, patternType)
	if placeholder, ok := r.hashMap[key]; ok {
		return placeholder
	}

	h := sha256.Sum256([]byte(key))
	digest := hex.EncodeToString(h[:])

	placeholder := ""
	for n := placeholderHexLen; n <= len(digest); n += 2 {
		candidate := fmt.Sprintf("[%s:%s]", patternType, digest[:n])
		if _, taken := r.owners[candidate]; !taken {
			placeholder = candidate
			break
		}
	}
	if placeholder == "" {
		// Unreachable for distinct keys short of a full SHA-256 collision.
		placeholder = fmt.Sprintf("[%s:%s-%d]", patternType, digest, len(r.hashMap))
	}

	r.hashMap[key] = placeholder
	r.owners[placeholder] = key
	return placeholder
}

// UniqueCount returns how many distinct values were redacted.
func (r *Redactor) UniqueCount() int {
	return len(r.hashMap)
}

// IsEnabled returns whether redaction is enabled.
func (r *Redactor) IsEnabled() bool {
	return r.enabled
}

// NormalizeValue folds formatting differences that do not change identity,
// such as letter case in emails and separators in phone or card numbers.
func NormalizeValue(value, patternType string) string {
	switch patternType {
	case "EMAIL":
		return strings.ToLower(value)
	case "PHONE", "CC":
		return strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' || r == '+' {
				return r
			}
			return -1
		}, value)
	default:
		return value
	}
}
