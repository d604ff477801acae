// Package analyzer computes conversation statistics from normalized
// transcripts: who spoke how much, on which days, and what the pipeline
// threw away.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bimmerbailey/parley/internal/parser"
	"github.com/bimmerbailey/parley/internal/preprocess"
)

// Stats holds aggregate statistics for one normalized export.
type Stats struct {
	Format          parser.Format      `json:"format" yaml:"format"`
	Lines           int                `json:"lines" yaml:"lines"`
	Messages        int                `json:"messages" yaml:"messages"`
	Participants    []ParticipantStats `json:"participants,omitempty" yaml:"participants,omitempty"`
	FirstTimestamp  string             `json:"first_timestamp,omitempty" yaml:"first_timestamp,omitempty"`
	LastTimestamp   string             `json:"last_timestamp,omitempty" yaml:"last_timestamp,omitempty"`
	Discarded       Discarded          `json:"discarded" yaml:"discarded"`
	RedactedCount   int                `json:"redacted_count" yaml:"redacted_count"`
	TranscriptChars int                `json:"transcript_chars" yaml:"transcript_chars"`
	EstimatedTokens int                `json:"estimated_tokens" yaml:"estimated_tokens"`
}

// ParticipantStats tracks one pseudonym's share of the conversation.
type ParticipantStats struct {
	Pseudonym string  `json:"pseudonym" yaml:"pseudonym"`
	Messages  int     `json:"messages" yaml:"messages"`
	Words     int     `json:"words" yaml:"words"`
	Percent   float64 `json:"percent" yaml:"percent"`
}

// Discarded counts content removed while parsing.
type Discarded struct {
	Empty         int `json:"empty" yaml:"empty"`
	Promotional   int `json:"promotional" yaml:"promotional"`
	Technical     int `json:"technical" yaml:"technical"`
	Continuations int `json:"continuations" yaml:"continuations"`
	Orphans       int `json:"orphans" yaml:"orphans"`
}

// GroupedResult represents messages grouped by a field value.
type GroupedResult struct {
	Key     string  `json:"key" yaml:"key"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Analyzer computes statistics over normalization results.
type Analyzer struct{}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// ComputeStats summarizes result. Participants are ordered by first
// appearance, matching their pseudonym numbers.
func (a *Analyzer) ComputeStats(result *preprocess.Result) Stats {
	if result == nil {
		return Stats{Format: parser.FormatGeneric}
	}

	stats := Stats{
		Format:          result.Format,
		Messages:        len(result.Messages),
		RedactedCount:   result.RedactedCount,
		TranscriptChars: len([]rune(result.Transcript)),
		EstimatedTokens: preprocess.EstimateTokens(result.Transcript),
	}

	if ps := result.Stats; ps != nil {
		stats.Lines = ps.Lines
		stats.Discarded = Discarded{
			Empty:         ps.DroppedEmpty,
			Promotional:   ps.DroppedPromotional,
			Technical:     ps.DroppedTechnical,
			Continuations: ps.DroppedContinuations,
			Orphans:       ps.Orphans,
		}
	} else if result.Transcript != "" {
		stats.Lines = strings.Count(result.Transcript, "\n") + 1
	}

	if len(result.Messages) == 0 {
		return stats
	}

	stats.FirstTimestamp = result.Messages[0].Timestamp
	stats.LastTimestamp = result.Messages[len(result.Messages)-1].Timestamp

	index := make(map[string]int, len(result.Participants))
	for _, label := range result.Participants {
		index[label] = len(stats.Participants)
		stats.Participants = append(stats.Participants, ParticipantStats{Pseudonym: label})
	}

	for _, msg := range result.Messages {
		i, ok := index[msg.Sender]
		if !ok {
			i = len(stats.Participants)
			index[msg.Sender] = i
			stats.Participants = append(stats.Participants, ParticipantStats{Pseudonym: msg.Sender})
		}
		stats.Participants[i].Messages++
		stats.Participants[i].Words += len(strings.Fields(msg.Body))
	}

	for i := range stats.Participants {
		stats.Participants[i].Percent = percent(stats.Participants[i].Messages, stats.Messages)
	}

	return stats
}

// GroupBy groups messages by a field and returns the top N groups.
// Supported fields: "participant", "day".
func (a *Analyzer) GroupBy(messages []parser.Message, field string, topN int) ([]GroupedResult, error) {
	if len(messages) == 0 {
		return nil, nil
	}

	groups := make(map[string]int)
	order := make([]string, 0)

	for _, m := range messages {
		var key string
		switch field {
		case "participant":
			key = m.Sender
		case "day":
			key = Day(m.Timestamp)
		default:
			return nil, fmt.Errorf("unsupported group-by field: %s (must be 'participant' or 'day')", field)
		}

		if key == "" {
			key = "(unknown)"
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key]++
	}

	result := make([]GroupedResult, 0, len(groups))
	for _, key := range order {
		result = append(result, GroupedResult{
			Key:     key,
			Count:   groups[key],
			Percent: percent(groups[key], len(messages)),
		})
	}

	// Stable keeps first-seen order among ties.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if topN > 0 && len(result) > topN {
		result = result[:topN]
	}

	return result, nil
}

// Day returns the date part of a message timestamp.
func Day(timestamp string) string {
	day, _, _ := strings.Cut(timestamp, " ")
	return day
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
