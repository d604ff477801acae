// Package parser splits structured chat exports into messages.
//
// A structured export has one header per message, "date, time - sender: body",
// optionally followed by continuation lines that belong to the same body.
// Lines are scanned by a two-state machine: either no message is open, or one
// message is open and collecting continuations.
package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bimmerbailey/parley/internal/classify"
)

// DefaultTechnicalLimit is the body length, in runes, above which a
// technical header body is discarded.
const DefaultTechnicalLimit = 1000

// headerGroups is the number of capture groups in headerPattern.
const headerGroups = 4

// headerPattern captures date, time, sender and body of a header line.
// The body may be empty so that headers emptied by noise stripping are
// discarded instead of being merged into the previous message.
var headerPattern = regexp.MustCompile(`(?i)^(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}),?` + ws + `*(\d{1,2}:\d{2}(?:` + ws + `*[ap]m)?)` + ws + `*-` + ws + `*([^:]+):` + ws + `*(.*)$`)

// Message is a single chat message recovered from an export.
type Message struct {
	Sender    string `json:"sender" yaml:"sender"`
	Body      string `json:"body" yaml:"body"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Line      int    `json:"line" yaml:"line"`
}

// Stats counts what the parser did with each line.
type Stats struct {
	Lines                int `json:"lines" yaml:"lines"`
	Headers              int `json:"headers" yaml:"headers"`
	Messages             int `json:"messages" yaml:"messages"`
	Continuations        int `json:"continuations" yaml:"continuations"`
	DroppedEmpty         int `json:"dropped_empty" yaml:"dropped_empty"`
	DroppedPromotional   int `json:"dropped_promotional" yaml:"dropped_promotional"`
	DroppedTechnical     int `json:"dropped_technical" yaml:"dropped_technical"`
	DroppedContinuations int `json:"dropped_continuations" yaml:"dropped_continuations"`
	Orphans              int `json:"orphans" yaml:"orphans"`
}

// ParseResult contains messages and the counters collected while parsing.
type ParseResult struct {
	Messages []Message
	Stats    Stats
}

// Parser turns structured chat exports into messages.
type Parser struct {
	technicalLimit int
}

// Option configures a Parser.
type Option func(*Parser)

// WithTechnicalLimit sets the rune length above which technical header
// bodies are discarded. Non-positive values keep the default.
func WithTechnicalLimit(limit int) Option {
	return func(p *Parser) {
		if limit > 0 {
			p.technicalLimit = limit
		}
	}
}

// New creates a new Parser.
func New(opts ...Option) *Parser {
	p := &Parser{technicalLimit: DefaultTechnicalLimit}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the messages in raw in encounter order.
func (p *Parser) Parse(raw string) ([]Message, error) {
	result, err := p.ParseWithStats(raw)
	if err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// ParseWithStats parses raw and reports per-line counters. A malformed
// header aborts the whole parse with a *FormatError.
func (p *Parser) ParseWithStats(raw string) (*ParseResult, error) {
	m := &machine{}

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m.stats.Lines++

		groups := headerPattern.FindStringSubmatch(line)
		if groups == nil {
			m.continuation(line)
			continue
		}
		if err := p.header(m, groups, line, i+1); err != nil {
			return nil, err
		}
	}
	m.emit()

	m.stats.Messages = len(m.out)
	return &ParseResult{Messages: m.out, Stats: m.stats}, nil
}

// header handles a line that matched headerPattern.
func (p *Parser) header(m *machine, groups []string, line string, lineNum int) error {
	if len(groups) != headerGroups+1 {
		return &FormatError{Line: lineNum, Text: line, Err: ErrMalformedHeader}
	}
	date, clock := groups[1], groups[2]
	sender := strings.TrimSpace(groups[3])
	body := strings.TrimSpace(groups[4])
	if sender == "" {
		return &FormatError{Line: lineNum, Text: line, Err: ErrMalformedHeader}
	}

	m.stats.Headers++
	m.emit()

	if body == "" {
		m.stats.DroppedEmpty++
		return nil
	}
	switch classify.Classify(body) {
	case classify.Promotional:
		m.stats.DroppedPromotional++
		return nil
	case classify.TechnicalBulk:
		if utf8.RuneCountInString(body) > p.technicalLimit {
			m.stats.DroppedTechnical++
			return nil
		}
	}

	m.open(Message{
		Sender:    sender,
		Body:      body,
		Timestamp: date + " " + clock,
		Line:      lineNum,
	})
	return nil
}

type parseState int

const (
	noOpenMessage parseState = iota
	openMessage
)

// machine holds the single piece of parser state: the open message, if any.
type machine struct {
	state   parseState
	current Message
	out     []Message
	stats   Stats
}

func (m *machine) open(msg Message) {
	m.current = msg
	m.state = openMessage
}

// emit closes the open message, if any, and appends it to the output.
// It is the only place messages are emitted.
func (m *machine) emit() {
	if m.state == openMessage {
		m.out = append(m.out, m.current)
	}
	m.current = Message{}
	m.state = noOpenMessage
}

// continuation handles a non-header line.
func (m *machine) continuation(line string) {
	if m.state == noOpenMessage {
		m.stats.Orphans++
		return
	}
	if classify.Classify(line) == classify.TechnicalBulk {
		m.stats.DroppedContinuations++
		return
	}
	m.current.Body += " " + line
	m.stats.Continuations++
}
