package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/bimmerbailey/parley/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectText(t *testing.T) {
	resetViper(t, "text")
	dir := t.TempDir()
	chat := writeTempFile(t, dir, "chat.txt", chatExport)
	notes := writeTempFile(t, dir, "notes.txt", "groceries\nmilk\neggs")

	var out, errOut bytes.Buffer
	require.NoError(t, runDetect(newTestCmd(&out, &errOut, ""), []string{chat, notes}))

	assert.Equal(t, chat+": structured\n"+notes+": generic\n", out.String())
}

func TestDetectJSON(t *testing.T) {
	resetViper(t, "json")
	file := writeTempFile(t, t.TempDir(), "chat.txt", chatExport+"\ndef main():\n    return 1")

	var out, errOut bytes.Buffer
	require.NoError(t, runDetect(newTestCmd(&out, &errOut, ""), []string{file}))

	var decoded []detection
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, parser.FormatStructured, decoded[0].Format)
	assert.Equal(t, 7, decoded[0].Lines)
	assert.Equal(t, 1, decoded[0].Promotions)
	assert.Equal(t, 1, decoded[0].Technical)
	assert.Equal(t, []string{"function_def"}, decoded[0].Signatures)
}

func TestDetectTextNamesCodeSignatures(t *testing.T) {
	resetViper(t, "text")
	file := writeTempFile(t, t.TempDir(), "chat.txt", chatExport+"\nimport os\n<div>hi</div>")

	var out, errOut bytes.Buffer
	require.NoError(t, runDetect(newTestCmd(&out, &errOut, ""), []string{file}))

	assert.Equal(t, file+": structured (code: html_tag, import)\n", out.String())
}

func TestDetectStdin(t *testing.T) {
	resetViper(t, "text")

	var out, errOut bytes.Buffer
	require.NoError(t, runDetect(newTestCmd(&out, &errOut, "just text"), []string{"-"}))
	assert.Equal(t, "<stdin>: generic\n", out.String())
}
