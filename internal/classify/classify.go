// Package classify labels chat text as promotional, technical or acceptable.
//
// Classification is a pure function of the text. The checks run in a fixed
// order so that text matching more than one rule always gets the same
// verdict: promotional content wins over technical content.
package classify

import (
	"encoding/json"
	"strings"
)

// Verdict is the outcome of classifying a line or message body.
type Verdict int

const (
	Accept Verdict = iota
	SystemNoise
	Promotional
	TechnicalBulk
)

// String returns the string representation of a Verdict.
func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case SystemNoise:
		return "system_noise"
	case Promotional:
		return "promotional"
	case TechnicalBulk:
		return "technical_bulk"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Verdict.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler for Verdict.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = ParseVerdict(s)
	return nil
}

// ParseVerdict converts a string to a Verdict. Unrecognized values map to Accept.
func ParseVerdict(s string) Verdict {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "system_noise", "noise":
		return SystemNoise
	case "promotional", "promo", "spam":
		return Promotional
	case "technical_bulk", "technical":
		return TechnicalBulk
	default:
		return Accept
	}
}

// Classify returns the verdict for text.
//
// SystemNoise is never returned here: boilerplate is stripped from the whole
// document before parsing rather than judged per message.
func Classify(text string) Verdict {
	if IsPromotional(text) {
		return Promotional
	}
	if IsTechnical(text) {
		return TechnicalBulk
	}
	return Accept
}

// IsPromotional reports whether text contains referral, payment or link vocabulary.
func IsPromotional(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range promotionalKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// IsTechnical reports whether text carries a markup or source code signature.
// Length is not considered.
func IsTechnical(text string) bool {
	for _, sig := range technicalSignatures {
		if sig.Regex.MatchString(text) {
			return true
		}
	}
	return false
}

// Matches returns the names of the technical signatures found in text.
func Matches(text string) []string {
	var names []string
	for _, sig := range technicalSignatures {
		if sig.Regex.MatchString(text) {
			names = append(names, sig.Name)
		}
	}
	return names
}
