// Package output renders normalization results and conversation statistics.
// It supports text, JSON, YAML, and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bimmerbailey/parley/internal/analyzer"
	"github.com/bimmerbailey/parley/internal/preprocess"
	"gopkg.in/yaml.v3"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// maxCellRunes bounds message bodies in table output.
const maxCellRunes = 80

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
	color  ColorMode
}

// New creates a new output Writer. Color defaults to ColorAuto.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WithColor sets when text output is colorized.
func (wr *Writer) WithColor(mode ColorMode) *Writer {
	wr.color = mode
	return wr
}

// Format returns the configured format.
func (wr *Writer) Format() Format {
	return wr.format
}

// WriteResult outputs a normalization result in the configured format.
// Text output is the bare transcript.
func (wr *Writer) WriteResult(result *preprocess.Result) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(result)
	case FormatYAML:
		return wr.WriteYAML(result)
	case FormatTable:
		if len(result.Messages) > 0 {
			return wr.writeMessageTable(result)
		}
		return wr.writeTranscript(result)
	default:
		return wr.writeTranscript(result)
	}
}

// WriteStats outputs conversation statistics in the configured format.
func (wr *Writer) WriteStats(stats analyzer.Stats) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(stats)
	case FormatYAML:
		return wr.WriteYAML(stats)
	case FormatTable:
		return wr.writeStatsTable(stats)
	default:
		return wr.writeStatsText(stats)
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML outputs any value as a YAML document.
func (wr *Writer) WriteYAML(v interface{}) error {
	enc := yaml.NewEncoder(wr.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeTranscript prints the transcript on one line. Generic results have
// no messages and are never colored.
func (wr *Writer) writeTranscript(result *preprocess.Result) error {
	if result.Transcript == "" {
		return nil
	}
	line := result.Transcript
	if len(result.Messages) > 0 && shouldColorize(wr.color, wr.w) {
		line = ColorizeMessages(result.Transcript, result.Messages)
	}
	_, err := fmt.Fprintln(wr.w, line)
	return err
}

func (wr *Writer) writeMessageTable(result *preprocess.Result) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tPARTICIPANT\tTIMESTAMP\tMESSAGE")
	fmt.Fprintln(tw, "----\t-----------\t---------\t-------")

	for _, m := range result.Messages {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.Line, m.Sender, m.Timestamp, truncate(m.Body, maxCellRunes))
	}

	return tw.Flush()
}

func (wr *Writer) writeStatsText(s analyzer.Stats) error {
	fmt.Fprintf(wr.w, "Format:        %s\n", s.Format)
	fmt.Fprintf(wr.w, "Lines:         %d\n", s.Lines)
	fmt.Fprintf(wr.w, "Messages:      %d\n", s.Messages)
	if s.FirstTimestamp != "" {
		fmt.Fprintf(wr.w, "Time range:    %s .. %s\n", s.FirstTimestamp, s.LastTimestamp)
	}
	fmt.Fprintf(wr.w, "Transcript:    %d chars (~%d tokens)\n", s.TranscriptChars, s.EstimatedTokens)
	if s.RedactedCount > 0 {
		fmt.Fprintf(wr.w, "Redacted:      %d\n", s.RedactedCount)
	}

	d := s.Discarded
	fmt.Fprintf(wr.w, "Discarded:     %d empty, %d promotional, %d technical, %d continuation lines, %d orphan lines\n",
		d.Empty, d.Promotional, d.Technical, d.Continuations, d.Orphans)

	if len(s.Participants) > 0 {
		fmt.Fprintln(wr.w, "\nParticipants:")
		for _, p := range s.Participants {
			fmt.Fprintf(wr.w, "  %-10s %5d messages %7d words  %5.1f%%\n", p.Pseudonym, p.Messages, p.Words, p.Percent)
		}
	}
	return nil
}

func (wr *Writer) writeStatsTable(s analyzer.Stats) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTICIPANT\tMESSAGES\tWORDS\tPERCENT")
	fmt.Fprintln(tw, "-----------\t--------\t-----\t-------")

	for _, p := range s.Participants {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", p.Pseudonym, p.Messages, p.Words, p.Percent)
	}

	return tw.Flush()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
