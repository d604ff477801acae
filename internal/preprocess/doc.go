// Package preprocess normalizes raw chat exports into anonymized transcripts.
//
// Structured exports ("date, time - sender: body" lines) go through four
// stages:
//
//  1. Noise stripping - Removes exporter boilerplate from the whole document
//  2. Parsing - Splits lines into messages, dropping spam and code spill
//  3. Anonymization - Replaces senders with "Person N" in first-seen order
//  4. Assembly - Joins "Person N: body" lines and collapses whitespace
//
// Anything else is treated as free text and only has whitespace, bracketed
// metadata and ISO timestamps removed.
//
// Basic usage:
//
//	normalizer := preprocess.New(
//	    preprocess.WithRedaction(true),
//	    preprocess.WithLogger(logger),
//	)
//	transcript, err := normalizer.Normalize(raw)
//
// Every call owns its pseudonym table, so a single Normalizer can be shared
// between goroutines and numbering never carries over between inputs.
//
// Configuration via ~/.parley.yaml:
//
//	pipeline:
//	  technical_limit: 1000
//	redaction:
//	  enabled: true
//	  patterns:
//	    - email
//	    - phone
package preprocess
