package output

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/bimmerbailey/parley/internal/parser"
	"github.com/stretchr/testify/assert"
)

func stripANSI(s string) string {
	for _, code := range []string{colorReset, colorRed, colorGreen, colorYellow, colorBlue, colorMagenta, colorCyan, colorBold} {
		s = strings.ReplaceAll(s, code, "")
	}
	return s
}

func TestColorizeLabel(t *testing.T) {
	tests := []struct {
		name          string
		label         string
		expectColor   bool
		expectedColor string
	}{
		{"first participant", "Person 1:", true, colorCyan},
		{"second participant", "Person 2:", true, colorGreen},
		{"wraps around", "Person 7:", true, colorCyan},
		{"not a label", "Unknown:", false, ""},
		{"label with trailing text", "Person 1: hi", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ColorizeLabel(tt.label)
			if !tt.expectColor {
				assert.Equal(t, tt.label, result)
				return
			}
			assert.Contains(t, result, tt.expectedColor)
			assert.True(t, strings.HasSuffix(result, colorReset))
			assert.Equal(t, tt.label, stripANSI(result))
		})
	}
}

func TestColorizeMessages_PreservesContent(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		messages   []parser.Message
	}{
		{
			name:       "two speakers",
			transcript: "Person 1: hi Person 2: hello",
			messages:   []parser.Message{{Sender: "Person 1", Body: "hi"}, {Sender: "Person 2", Body: "hello"}},
		},
		{
			name:       "multiline body",
			transcript: "Person 1: 你好 世界 Person 12: ok",
			messages:   []parser.Message{{Sender: "Person 1", Body: "你好\n\n  世界"}, {Sender: "Person 12", Body: "ok"}},
		},
		{
			name:       "no messages",
			transcript: "no labels at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorizeMessages(tt.transcript, tt.messages)
			assert.Equal(t, tt.transcript, stripANSI(got))
			assert.Equal(t, len(tt.messages), strings.Count(got, colorBold))
		})
	}
}

func TestColorizeMessages_QuotedLabelStaysPlain(t *testing.T) {
	transcript := "Person 1: ask Person 2: about it Person 2: ok"
	messages := []parser.Message{
		{Sender: "Person 1", Body: "ask Person 2: about it"},
		{Sender: "Person 2", Body: "ok"},
	}

	got := ColorizeMessages(transcript, messages)

	assert.Equal(t, transcript, stripANSI(got))
	assert.Equal(t, 2, strings.Count(got, colorBold))
	assert.Equal(t, 1, strings.Count(got, colorGreen))
	assert.Contains(t, got, "ask Person 2: about it")
}

func TestColorizeMessages_ClippedTranscript(t *testing.T) {
	messages := []parser.Message{
		{Sender: "Person 1", Body: "first message"},
		{Sender: "Person 2", Body: "second message"},
		{Sender: "Person 3", Body: "third"},
	}

	tests := []struct {
		name       string
		transcript string
		labels     int
	}{
		{"inside a body", "Person 1: first message Person 2: sec", 2},
		{"inside a label", "Person 1: first message Perso", 1},
		{"on the separator", "Person 1: first message ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorizeMessages(tt.transcript, messages)
			assert.Equal(t, tt.transcript, stripANSI(got))
			assert.Equal(t, tt.labels, strings.Count(got, colorBold))
		})
	}
}

func TestColorizeMessages_StopsAtMismatch(t *testing.T) {
	transcript := "Person 1: hi Person 2: edited Person 3: bye"
	messages := []parser.Message{
		{Sender: "Person 1", Body: "hi"},
		{Sender: "Person 2", Body: "original"},
		{Sender: "Person 3", Body: "bye"},
	}

	got := ColorizeMessages(transcript, messages)

	assert.Equal(t, transcript, stripANSI(got))
	assert.Equal(t, 1, strings.Count(got, colorBold))
}

func TestShouldColorize(t *testing.T) {
	tests := []struct {
		name     string
		mode     ColorMode
		writer   interface{}
		expected bool
	}{
		{"ColorAlways - any writer", ColorAlways, &bytes.Buffer{}, true},
		{"ColorNever - any writer", ColorNever, os.Stdout, false},
		{"ColorAuto - non-file writer", ColorAuto, &bytes.Buffer{}, false},
		{"ColorAuto - file writer (stdout)", ColorAuto, os.Stdout, isTerminal(os.Stdout)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldColorize(tt.mode, tt.writer))
		})
	}
}

func TestParseColorMode(t *testing.T) {
	assert.Equal(t, ColorAlways, ParseColorMode("always"))
	assert.Equal(t, ColorNever, ParseColorMode("never"))
	assert.Equal(t, ColorAuto, ParseColorMode("auto"))
	assert.Equal(t, ColorAuto, ParseColorMode(""))
}

func TestANSIColorCodes(t *testing.T) {
	for _, code := range participantColors {
		assert.True(t, strings.HasPrefix(code, "\033["))
		assert.True(t, strings.HasSuffix(code, "m"))
	}
}
