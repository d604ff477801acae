package preprocess

import (
	"unicode/utf8"
)

// DefaultMaxChars is the transcript length conversational-analysis callers
// usually forward as model context.
const DefaultMaxChars = 2000

// Token estimation: roughly 1 token per 4 characters for English text.
const charsPerToken = 4

// EstimateTokens returns a rough token count for text.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + charsPerToken - 1) / charsPerToken
}

// Clip shortens text to at most maxChars runes and reports whether it cut
// anything. A non-positive maxChars disables clipping.
func Clip(text string, maxChars int) (string, bool) {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text, false
	}

	n := 0
	for i := range text {
		if n == maxChars {
			return text[:i], true
		}
		n++
	}
	return text, false
}
