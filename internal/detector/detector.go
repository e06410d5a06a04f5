// Package detector guards the engine's single-language scope: the rule set
// and the model are English-only, so non-English input should pass through
// uncorrected rather than be mangled.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// minDetectionRunes is the minimum rune count for a reliable detection.
// Shorter texts are assumed English rather than risking a false rejection.
const minDetectionRunes = 20

// Detector reports whether text appears to be English. Building the
// underlying language detector is expensive; construct once and reuse.
type Detector struct {
	detector lingua.LanguageDetector
}

// New creates a Detector over a small set of high-traffic languages, which
// is cheaper and more accurate than detecting against all of them.
func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English, lingua.Spanish, lingua.French, lingua.German,
			lingua.Italian, lingua.Portuguese, lingua.Russian, lingua.Chinese,
			lingua.Japanese, lingua.Hindi, lingua.Arabic,
		).
		Build()

	return &Detector{detector: detector}
}

// IsEnglish returns true when text is English, too short to classify, or
// ambiguous. Only a confident non-English detection returns false.
func (d *Detector) IsEnglish(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minDetectionRunes {
		return true
	}

	lang, ok := d.detector.DetectLanguageOf(trimmed)
	if !ok {
		return true
	}
	return lang == lingua.English
}

// Detect returns the ISO 639-1 code of the detected language, with ok false
// when the text's language cannot be determined.
func (d *Detector) Detect(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
