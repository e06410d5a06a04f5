// Package chunker splits long inputs into pieces small enough for the
// generative model's maximum sequence length, preferring splits that keep
// sentences and paragraphs intact so each piece can be corrected on its own.
package chunker

import (
	"strings"
	"unicode"
)

// Chunk splits text into pieces of at most maxRunes code points each.
// Split points are chosen in order of preference:
//  1. Paragraph boundary (blank line)
//  2. Sentence-ending punctuation (. ! ?) followed by whitespace
//  3. Whitespace (word boundary)
//  4. Hard cut when nothing better exists
//
// Text that already fits is returned as a single-element slice, and
// maxRunes ≤ 0 means unlimited.
func Chunk(text string, maxRunes int) []string {
	if maxRunes <= 0 || len([]rune(text)) <= maxRunes {
		return []string{text}
	}

	var chunks []string
	remaining := text

	for len([]rune(remaining)) > maxRunes {
		split := findSplit(remaining, maxRunes)
		piece := strings.TrimSpace(remaining[:split])
		if piece != "" {
			chunks = append(chunks, piece)
		}
		remaining = strings.TrimSpace(remaining[split:])
	}

	if strings.TrimSpace(remaining) != "" {
		chunks = append(chunks, strings.TrimSpace(remaining))
	}

	return chunks
}

// findSplit returns the byte offset at which to cut so the first piece holds
// at most maxRunes runes, searching backwards for the best boundary.
func findSplit(text string, maxRunes int) int {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return len(text)
	}

	candidate := runes[:maxRunes]

	if idx := strings.LastIndex(string(candidate), "\n\n"); idx > 0 {
		return idx + 2
	}
	if idx := strings.LastIndex(string(candidate), "\r\n\r\n"); idx > 0 {
		return idx + 4
	}

	for i := len(candidate) - 1; i > 0; i-- {
		r := candidate[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(candidate) && unicode.IsSpace(candidate[i+1]) {
			return len(string(candidate[:i+1]))
		}
	}

	for i := len(candidate) - 1; i > 0; i-- {
		if unicode.IsSpace(candidate[i]) {
			return len(string(candidate[:i]))
		}
	}

	return len(string(candidate))
}
