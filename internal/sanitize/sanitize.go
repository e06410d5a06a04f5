// Package sanitize cleans raw generative-model output before it is accepted
// as a grammar correction.
//
// Models trained or prompted with instruction prefixes sometimes echo them
// back ("grammar: …", "Corrected text: …"); Clean strips one leading prefix,
// trims the result, and decides whether anything usable remains.
package sanitize

import "strings"

// DefaultPrefixes are the instructional prefixes stripped from model output,
// checked in order. At most one is removed.
var DefaultPrefixes = []string{
	"grammar:",
	"Correct the grammar in this text:",
	"Corrected text:",
	"Corrected:",
}

// Sanitizer strips a configurable set of leading prefixes from model output.
type Sanitizer struct {
	prefixes []string
}

// New creates a Sanitizer. With no prefixes given, DefaultPrefixes is used.
func New(prefixes ...string) *Sanitizer {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	return &Sanitizer{prefixes: prefixes}
}

// Clean strips a leading instructional prefix from raw and trims surrounding
// whitespace. The second return value is false — no correction — when the
// cleaned text is empty or equals original under case-insensitive
// comparison; the cleaned text is then meaningless and must be discarded.
func (s *Sanitizer) Clean(raw, original string) (string, bool) {
	cleaned := strings.TrimSpace(raw)

	for _, prefix := range s.prefixes {
		if len(cleaned) >= len(prefix) && strings.EqualFold(cleaned[:len(prefix)], prefix) {
			cleaned = strings.TrimSpace(cleaned[len(prefix):])
			break
		}
	}

	if cleaned == "" || strings.EqualFold(cleaned, original) {
		return "", false
	}
	return cleaned, true
}
