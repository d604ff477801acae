package preprocess

import (
	"strings"

	"github.com/bimmerbailey/parley/internal/parser"
	"go.uber.org/zap"
)

// Normalizer turns raw chat exports into anonymized transcripts.
//
// A Normalizer only holds configuration. Pseudonym tables and redaction
// state are created per call, so it is safe for concurrent use.
//
// Usage:
//
//	normalizer := preprocess.New(
//	    preprocess.WithTechnicalLimit(1000),
//	    preprocess.WithRedaction(true),
//	    preprocess.WithRedactionPatterns([]string{"email", "phone"}),
//	)
//
//	result, err := normalizer.NormalizeWithReport(raw)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Transcript)
type Normalizer struct {
	technicalLimit    int
	redaction         bool
	redactionPatterns []string
	logger            *zap.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithTechnicalLimit sets the rune length above which technical message
// bodies are dropped. Default is parser.DefaultTechnicalLimit.
func WithTechnicalLimit(limit int) Option {
	return func(n *Normalizer) {
		n.technicalLimit = limit
	}
}

// WithRedaction enables or disables personal data redaction in message
// bodies. Default is disabled.
func WithRedaction(enabled bool) Option {
	return func(n *Normalizer) {
		n.redaction = enabled
	}
}

// WithRedactionPatterns sets which redaction patterns to use.
// Default patterns are used if not specified.
func WithRedactionPatterns(patterns []string) Option {
	return func(n *Normalizer) {
		n.redactionPatterns = patterns
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates a new Normalizer with the specified options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		technicalLimit:    parser.DefaultTechnicalLimit,
		redactionPatterns: DefaultPatterns(),
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Result is a normalized transcript together with what was learned
// producing it. Messages carry pseudonyms, never the original senders.
type Result struct {
	Transcript     string           `json:"transcript" yaml:"transcript"`
	Format         parser.Format    `json:"format" yaml:"format"`
	Messages       []parser.Message `json:"messages,omitempty" yaml:"messages,omitempty"`
	Participants   []string         `json:"participants,omitempty" yaml:"participants,omitempty"`
	Stats          *parser.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	RedactedCount  int              `json:"redacted_count" yaml:"redacted_count"`
	RedactedUnique int              `json:"redacted_unique" yaml:"redacted_unique"` // distinct values; repeats share a placeholder
}

// Normalize returns the transcript for raw. Empty input yields an empty
// transcript; a malformed structured header yields a *parser.FormatError.
func (n *Normalizer) Normalize(raw string) (string, error) {
	result, err := n.NormalizeWithReport(raw)
	if err != nil {
		return "", err
	}
	return result.Transcript, nil
}

// LooksStructured reports whether raw takes the structured path.
func (n *Normalizer) LooksStructured(raw string) bool {
	return parser.LooksStructured(raw)
}

// NormalizeWithReport runs the pipeline and returns the transcript with
// anonymized messages and parse counters.
func (n *Normalizer) NormalizeWithReport(raw string) (*Result, error) {
	if strings.TrimSpace(raw) == "" {
		n.logger.Debug("empty input")
		return &Result{Format: parser.FormatGeneric}, nil
	}

	format := parser.DetectFormat(raw)
	n.logger.Debug("detected format", zap.String("format", string(format)), zap.Int("bytes", len(raw)))

	if format == parser.FormatGeneric {
		return n.normalizeGeneric(raw), nil
	}
	return n.normalizeStructured(raw)
}

func (n *Normalizer) normalizeGeneric(raw string) *Result {
	redactor := NewRedactor(n.redaction, n.redactionPatterns)
	transcript, redacted := redactor.RedactAndCount(CleanGeneric(raw))

	return &Result{
		Transcript:     transcript,
		Format:         parser.FormatGeneric,
		RedactedCount:  redacted,
		RedactedUnique: redactor.UniqueCount(),
	}
}

func (n *Normalizer) normalizeStructured(raw string) (*Result, error) {
	p := parser.New(parser.WithTechnicalLimit(n.technicalLimit))
	parsed, err := p.ParseWithStats(StripSystemNoise(raw))
	if err != nil {
		n.logger.Debug("rejected structured input", zap.Error(err))
		return nil, err
	}

	redactor := NewRedactor(n.redaction, n.redactionPatterns)
	table := NewPseudonyms()

	messages := make([]parser.Message, 0, len(parsed.Messages))
	redacted := 0
	for _, msg := range parsed.Messages {
		body, count := redactor.RedactAndCount(msg.Body)
		redacted += count
		msg.Body = body
		messages = append(messages, msg)
	}

	transcript := Assemble(messages, table)
	for i := range messages {
		if label, ok := table.Lookup(messages[i].Sender); ok {
			messages[i].Sender = label
		}
	}

	entries := table.Entries()
	participants := make([]string, 0, len(entries))
	for _, entry := range entries {
		participants = append(participants, entry.Pseudonym)
	}

	stats := parsed.Stats
	n.logger.Debug("normalized structured export",
		zap.Int("lines", stats.Lines),
		zap.Int("messages", stats.Messages),
		zap.Int("participants", table.Len()),
		zap.Int("dropped_promotional", stats.DroppedPromotional),
		zap.Int("dropped_technical", stats.DroppedTechnical+stats.DroppedContinuations),
		zap.Bool("redaction", redactor.IsEnabled()),
		zap.Int("redacted", redacted),
		zap.Int("redacted_unique", redactor.UniqueCount()),
	)

	return &Result{
		Transcript:     transcript,
		Format:         parser.FormatStructured,
		Messages:       messages,
		Participants:   participants,
		Stats:          &stats,
		RedactedCount:  redacted,
		RedactedUnique: redactor.UniqueCount(),
	}, nil
}

// Normalize is a convenience function using default settings.
func Normalize(raw string) (string, error) {
	return New().Normalize(raw)
}

// LooksStructured reports whether raw is a structured chat export.
func LooksStructured(raw string) bool {
	return parser.LooksStructured(raw)
}
