package output

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/bimmerbailey/parley/internal/parser"
	"github.com/bimmerbailey/parley/internal/preprocess"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorBold    = "\033[1m"
)

// participantColors cycles by pseudonym number.
var participantColors = []string{colorCyan, colorGreen, colorYellow, colorMagenta, colorBlue, colorRed}

var labelRegex = regexp.MustCompile(`^Person (\d+):$`)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// ParseColorMode converts "auto", "always" or "never" to a ColorMode,
// defaulting to ColorAuto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// colorFor returns the color of pseudonym number n.
func colorFor(n int) string {
	if n < 1 {
		return ""
	}
	return participantColors[(n-1)%len(participantColors)]
}

// ColorizeLabel wraps a "Person N:" label in bold and its participant color.
func ColorizeLabel(label string) string {
	m := labelRegex.FindStringSubmatch(label)
	if m == nil {
		return label
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return label
	}
	return colorBold + colorFor(n) + label + colorReset
}

// ColorizeMessages colors the speaker label of each message in transcript,
// which must be the assembled form of messages. Only segment starts are
// colored, so a body that quotes "Person 2:" stays plain. From the first
// segment that does not line up (a clipped tail, say) the rest is copied as is.
func ColorizeMessages(transcript string, messages []parser.Message) string {
	var b strings.Builder
	b.Grow(len(transcript) + len(messages)*16)

	rest := transcript
	for i, msg := range messages {
		if i > 0 {
			if !strings.HasPrefix(rest, " ") {
				break
			}
			b.WriteByte(' ')
			rest = rest[1:]
		}

		label := msg.Sender + ":"
		if !strings.HasPrefix(rest, label) {
			break
		}
		segment := preprocess.CollapseWhitespace(label + " " + msg.Body)
		if !strings.HasPrefix(rest, segment) && !strings.HasPrefix(segment, rest) {
			break
		}

		end := min(len(segment), len(rest))
		b.WriteString(ColorizeLabel(label))
		b.WriteString(rest[len(label):end])
		rest = rest[end:]
	}

	b.WriteString(rest)
	return b.String()
}
