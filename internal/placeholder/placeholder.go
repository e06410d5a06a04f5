// Package placeholder shields structured content (fenced code blocks, inline
// code spans, HTML tags) from grammar correction by swapping it for numbered
// markers ([PH0], [PH1], …) before the rule cascade or the model runs, and
// swapping the originals back afterwards.
package placeholder

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// fenced code blocks: ```...``` (non-greedy, may span lines)
	reFencedCode = regexp.MustCompile("(?s)```.*?```")

	// inline code spans: `...`
	reInlineCode = regexp.MustCompile("`[^`]+`")

	// HTML/XML tags: opening, closing, and self-closing
	reHTMLTag = regexp.MustCompile(`<[^>]+>`)

	// marker reference in corrected text
	reMarker = regexp.MustCompile(`\[PH(\d+)\]`)
)

// Protect replaces structured markup with numbered markers in order of
// appearance and returns the modified text plus the captured originals so
// Restore can put them back. Plain prose comes back unchanged with a nil
// marker slice.
func Protect(text string) (string, []string) {
	var markers []string

	replace := func(match string) string {
		id := fmt.Sprintf("[PH%d]", len(markers))
		markers = append(markers, match)
		return id
	}

	// Fenced blocks first (longest match), then inline code, then tags.
	text = reFencedCode.ReplaceAllStringFunc(text, replace)
	text = reInlineCode.ReplaceAllStringFunc(text, replace)
	text = reHTMLTag.ReplaceAllStringFunc(text, replace)

	return text, markers
}

// Restore substitutes [PHn] markers back with the originals captured by
// Protect. Unknown indices are left as-is.
func Restore(text string, markers []string) string {
	return reMarker.ReplaceAllStringFunc(text, func(match string) string {
		sub := reMarker.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		idx := 0
		fmt.Sscanf(sub[1], "%d", &idx)
		if idx < 0 || idx >= len(markers) {
			return match
		}
		return markers[idx]
	})
}

// Intact reports whether every marker created by Protect is still present in
// text. A generative model that drops or rewrites markers has mangled the
// protected content, and its output must not be trusted.
func Intact(text string, markers []string) bool {
	for i := range markers {
		if !strings.Contains(text, fmt.Sprintf("[PH%d]", i)) {
			return false
		}
	}
	return true
}
