package classify

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Verdict
	}{
		{"plain chat", "are you coming tonight?", Accept},
		{"empty", "", Accept},
		{"https link", "see https://example.com", Promotional},
		{"http link", "HTTP://EXAMPLE.COM", Promotional},
		{"bare www", "go to www.shop.in", Promotional},
		{"referral", "use my Referral Code ABC123", Promotional},
		{"payment brand", "send it on GPay", Promotional},
		{"cashback", "flat cashback today", Promotional},
		{"latex begin", `\begin{document}`, TechnicalBulk},
		{"latex documentclass", `\documentclass{article}`, TechnicalBulk},
		{"python def", "def main(): pass", TechnicalBulk},
		{"import", "import numpy as np", TechnicalBulk},
		{"from import", "from os import path", TechnicalBulk},
		{"html tag", "<div>hi</div>", TechnicalBulk},
		{"hash comment", "   # setup", TechnicalBulk},
		{"slash comment", "// TODO", TechnicalBulk},
		{"comment on later line", "hello\n# heading", TechnicalBulk},
		{"promotional beats technical", "<b>https://x.y</b>", Promotional},
		{"hashtag mid line", "loved it #blessed", Accept},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassify_NeverSystemNoise(t *testing.T) {
	for _, text := range []string{"This message was deleted", "<Media omitted>", "null"} {
		assert.NotEqual(t, SystemNoise, Classify(text), text)
	}
}

func TestIsTechnical_IgnoresLength(t *testing.T) {
	short := "<p>"
	long := strings.Repeat("word ", 500)

	assert.True(t, IsTechnical(short))
	assert.False(t, IsTechnical(long))
}

func TestMatches(t *testing.T) {
	got := Matches("import os\n<br>")
	assert.ElementsMatch(t, []string{"import", "html_tag"}, got)
	assert.Empty(t, Matches("nothing to see"))
}

func TestVerdict_JSON(t *testing.T) {
	data, err := json.Marshal(TechnicalBulk)
	require.NoError(t, err)
	assert.Equal(t, `"technical_bulk"`, string(data))

	var v Verdict
	require.NoError(t, json.Unmarshal([]byte(`"Promotional"`), &v))
	assert.Equal(t, Promotional, v)
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "accept", Accept.String())
	assert.Equal(t, "system_noise", SystemNoise.String())
	assert.Equal(t, "unknown", Verdict(42).String())
}
