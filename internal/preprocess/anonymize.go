package preprocess

import (
	"fmt"
	"strings"
)

// UnknownSender labels messages without a sender. It is never stored.
const UnknownSender = "Unknown"

// Pseudonyms maps raw sender names to "Person N" labels, numbered by first
// appearance. A table belongs to one normalization run and must not be
// reused for another input.
type Pseudonyms struct {
	labels map[string]string
	order  []string
}

// PseudonymEntry is one sender/pseudonym pair.
type PseudonymEntry struct {
	Sender    string
	Pseudonym string
}

// NewPseudonyms creates an empty table.
func NewPseudonyms() *Pseudonyms {
	return &Pseudonyms{labels: make(map[string]string)}
}

// Anonymize returns the pseudonym for sender, assigning the next free
// "Person N" on first sight. Senders are trimmed and compared case-sensitively.
func (p *Pseudonyms) Anonymize(sender string) string {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return UnknownSender
	}
	if label, ok := p.labels[sender]; ok {
		return label
	}

	label := fmt.Sprintf("Person %d", len(p.labels)+1)
	p.labels[sender] = label
	p.order = append(p.order, sender)
	return label
}

// Lookup returns the pseudonym already assigned to sender, if any.
func (p *Pseudonyms) Lookup(sender string) (string, bool) {
	label, ok := p.labels[strings.TrimSpace(sender)]
	return label, ok
}

// Len returns the number of distinct senders seen.
func (p *Pseudonyms) Len() int {
	return len(p.labels)
}

// Entries returns the table in first-seen order.
func (p *Pseudonyms) Entries() []PseudonymEntry {
	entries := make([]PseudonymEntry, 0, len(p.order))
	for _, sender := range p.order {
		entries = append(entries, PseudonymEntry{Sender: sender, Pseudonym: p.labels[sender]})
	}
	return entries
}
