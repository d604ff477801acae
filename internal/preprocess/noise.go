package preprocess

import (
	"regexp"
)

// SystemNoisePhrases are exporter boilerplate removed before parsing.
var SystemNoisePhrases = []string{
	"Messages and calls are end-to-end encrypted",
	"Only people in this chat can read, listen to, or share them",
	"Learn more",
	"is a contact",
	"Your security code with",
	"changed. Tap to learn more",
	"<Media omitted>",
	"This message was deleted",
	"You deleted this message",
	"joined using this group",
	"left the group",
	"added you",
	"removed you",
	"created group",
	"changed the group description",
	"changed this group's icon",
	"null",
}

var noisePatterns = compileNoise(SystemNoisePhrases)

func compileNoise(phrases []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(phrases))
	for _, phrase := range phrases {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(phrase)))
	}
	return patterns
}

// StripSystemNoise removes every SystemNoisePhrases occurrence from raw,
// ignoring case. Phrases are removed one after another over the whole
// document, so a header can be left with an empty body.
func StripSystemNoise(raw string) string {
	for _, re := range noisePatterns {
		raw = re.ReplaceAllLiteralString(raw, "")
	}
	return raw
}
