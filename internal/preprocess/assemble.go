package preprocess

import (
	"regexp"
	"strings"

	"github.com/bimmerbailey/parley/internal/parser"
)

// ws matches one whitespace rune, Unicode space separators included.
const ws = `[\s\v\x{85}\p{Z}]`

var (
	blankRunRegex   = regexp.MustCompile(`\n` + ws + `*\n`)
	whitespaceRegex = regexp.MustCompile(ws + `+`)
)

// Assemble renders messages as "Person N: body" lines using table and
// collapses the result with CollapseWhitespace.
func Assemble(messages []parser.Message, table *Pseudonyms) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, table.Anonymize(msg.Sender)+": "+msg.Body)
	}
	return CollapseWhitespace(strings.Join(lines, "\n"))
}

// CollapseWhitespace folds blank-line runs into one newline, then every
// whitespace run into a single space, and trims the ends. Line boundaries do
// not survive: the transcript comes back as one line.
//
// TODO: the second pass erases the message boundaries the first pass keeps;
// consumers rely on the single-line form, so changing it needs a format flag.
func CollapseWhitespace(s string) string {
	s = blankRunRegex.ReplaceAllLiteralString(s, "\n")
	s = whitespaceRegex.ReplaceAllLiteralString(s, " ")
	return strings.TrimSpace(s)
}
