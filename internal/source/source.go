// Package source reads chat exports from files or stdin and decodes them
// to UTF-8 text.
//
// Exports saved by phones and desktop clients arrive with a UTF-8 or UTF-16
// byte order mark, or in a legacy single-byte charset. Decode handles all
// three; an explicit charset name overrides detection.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bimmerbailey/parley/internal/config"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Reader loads raw exports.
type Reader struct {
	charset string
	stdin   io.Reader
}

// Option configures a Reader.
type Option func(*Reader)

// WithCharset forces a charset by IANA name, e.g. "iso-8859-1".
func WithCharset(name string) Option {
	return func(r *Reader) {
		r.charset = strings.TrimSpace(name)
	}
}

// WithStdin sets the reader used for the "-" path. Default is os.Stdin.
func WithStdin(in io.Reader) Option {
	return func(r *Reader) {
		if in != nil {
			r.stdin = in
		}
	}
}

// New creates a new Reader.
func New(opts ...Option) *Reader {
	r := &Reader{stdin: os.Stdin}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadFile reads and decodes path. The path "-" reads standard input.
func (r *Reader) ReadFile(path string) (string, error) {
	if path == config.Stdin {
		return r.ReadAll(r.stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text, err := r.Decode(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return text, nil
}

// ReadAll reads everything from in and decodes it.
func (r *Reader) ReadAll(in io.Reader) (string, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return r.Decode(data)
}

// Decode converts data to UTF-8 and normalizes line endings to "\n".
func (r *Reader) Decode(data []byte) (string, error) {
	enc, err := r.encodingFor(data)
	if err != nil {
		return "", err
	}

	var text string
	if enc == nil {
		text = string(data)
	} else {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("failed to decode input: %w", err)
		}
		text = string(decoded)
	}

	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}

// encodingFor picks the decoder for data. A nil encoding means the bytes
// are already UTF-8.
func (r *Reader) encodingFor(data []byte) (encoding.Encoding, error) {
	if r.charset != "" {
		return Lookup(r.charset)
	}

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return nil, nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), nil
	case utf8.Valid(data):
		return nil, nil
	default:
		// Windows-1252 is a superset of ISO-8859-1 for printable text.
		return charmap.Windows1252, nil
	}
}

// Lookup resolves an IANA charset name. UTF-8 resolves to a nil encoding.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(strings.ToLower(name))
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
	return enc, nil
}
