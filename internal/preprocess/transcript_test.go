package preprocess

import (
	"strings"
	"testing"

	"github.com/bimmerbailey/parley/internal/parser"
	"github.com/stretchr/testify/assert"
)

func TestAssemble(t *testing.T) {
	messages := []parser.Message{
		{Sender: "Alice", Body: "hello"},
		{Sender: "Bob", Body: "hi   there"},
		{Sender: "", Body: "who"},
		{Sender: "Alice", Body: "bye"},
	}

	table := NewPseudonyms()
	got := Assemble(messages, table)

	assert.Equal(t, "Person 1: hello Person 2: hi there Unknown: who Person 1: bye", got)
	assert.Equal(t, 2, table.Len())
}

func TestAssemble_Empty(t *testing.T) {
	assert.Equal(t, "", Assemble(nil, NewPseudonyms()))
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"blank lines", "a\n\n\nb", "a b"},
		{"tabs and spaces", "a \t  b", "a b"},
		{"crlf", "a\r\n\r\nb\r\n", "a b"},
		{"unicode spaces", "a  b c", "a b c"},
		{"vertical tab", "a\vb", "a b"},
		{"edges trimmed", "  \n a \n ", "a"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollapseWhitespace(tt.input))
		})
	}
}

func TestCollapseWhitespace_Idempotent(t *testing.T) {
	inputs := []string{
		"Person 1: hi\n\nPerson 2:   yo\t\n",
		" lead and trail　",
		strings.Repeat(" x \n\n", 20),
	}
	for _, in := range inputs {
		once := CollapseWhitespace(in)
		assert.Equal(t, once, CollapseWhitespace(once))
	}
}

func TestCleanGeneric(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bracketed metadata",
			input: "[user joined] hello [edited]",
			want:  "hello",
		},
		{
			name:  "iso timestamp",
			input: "2024-03-01 08:15:00 Me: running late",
			want:  "Me: running late",
		},
		{
			name:  "non greedy brackets",
			input: "a [x] b [y] c",
			want:  "a  b  c",
		},
		{
			name:  "paragraphs folded",
			input: "first\n\n\nsecond\nthird",
			want:  "first second third",
		},
		{
			name:  "unbalanced bracket kept",
			input: "look [here",
			want:  "look [here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanGeneric(tt.input))
		})
	}
}

func TestStripSystemNoise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"media marker", "x - Bob: <Media omitted>", "x - Bob: "},
		{"case insensitive", "THIS MESSAGE WAS DELETED", ""},
		{"group events", "Bob left the group", "Bob "},
		{"null token", "value was null", "value was "},
		{"apostrophe phrase", "Ann changed this group's icon", "Ann "},
		{"untouched", "nothing to strip", "nothing to strip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripSystemNoise(tt.input))
		})
	}
}

func TestClip(t *testing.T) {
	got, clipped := Clip("héllo world", 5)
	assert.True(t, clipped)
	assert.Equal(t, "héllo", got)

	got, clipped = Clip("short", 10)
	assert.False(t, clipped)
	assert.Equal(t, "short", got)

	got, clipped = Clip("unbounded", 0)
	assert.False(t, clipped)
	assert.Equal(t, "unbounded", got)

	got, clipped = Clip("exact", 5)
	assert.False(t, clipped)
	assert.Equal(t, "exact", got)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, DefaultMaxChars/4, EstimateTokens(strings.Repeat("a", DefaultMaxChars)))
}
