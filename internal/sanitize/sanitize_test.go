package sanitize

import "testing"

func TestClean_PrefixStripping(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		raw      string
		original string
		expected string
		ok       bool
	}{
		{
			name:     "grammar prefix",
			raw:      "grammar: She doesn't like it",
			original: "she dont like it",
			expected: "She doesn't like it",
			ok:       true,
		},
		{
			name:     "instruction echo prefix",
			raw:      "Correct the grammar in this text: How are you?",
			original: "how is you?",
			expected: "How are you?",
			ok:       true,
		},
		{
			name:     "corrected text prefix",
			raw:      "Corrected text: I have an apple",
			original: "i have a apple",
			expected: "I have an apple",
			ok:       true,
		},
		{
			name:     "short corrected prefix",
			raw:      "Corrected: Hello world",
			original: "helo world",
			expected: "Hello world",
			ok:       true,
		},
		{
			name:     "prefix matched case-insensitively",
			raw:      "GRAMMAR: Fixed text",
			original: "broken text",
			expected: "Fixed text",
			ok:       true,
		},
		{
			name:     "no prefix passes through",
			raw:      "  They are students  ",
			original: "they is students",
			expected: "They are students",
			ok:       true,
		},
		{
			name:     "at most one prefix stripped",
			raw:      "grammar: Corrected: twice",
			original: "something",
			expected: "Corrected: twice",
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Clean(tt.raw, tt.original)
			if ok != tt.ok {
				t.Fatalf("Clean(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestClean_NoCorrection(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		raw      string
		original string
	}{
		{
			name:     "identical to original",
			raw:      "The book is on the table",
			original: "The book is on the table",
		},
		{
			name:     "equal under case folding",
			raw:      "the book IS on the table",
			original: "The book is on the table",
		},
		{
			name:     "empty output",
			raw:      "",
			original: "anything",
		},
		{
			name:     "whitespace only",
			raw:      "   \n\t",
			original: "anything",
		},
		{
			name:     "empty after prefix stripping",
			raw:      "Corrected:   ",
			original: "anything",
		},
		{
			name:     "prefix wrapping the original",
			raw:      "grammar: how is you?",
			original: "how is you?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Clean(tt.raw, tt.original)
			if ok {
				t.Errorf("Clean(%q, %q) = (%q, true), want no correction", tt.raw, tt.original, got)
			}
		})
	}
}

func TestClean_CustomPrefixes(t *testing.T) {
	s := New("Output:")

	got, ok := s.Clean("Output: fixed", "broken")
	if !ok || got != "fixed" {
		t.Errorf("Clean with custom prefix = (%q, %v), want (%q, true)", got, ok, "fixed")
	}

	// Default prefixes are not active when custom ones are given.
	got, ok = s.Clean("Corrected: fixed", "broken")
	if !ok || got != "Corrected: fixed" {
		t.Errorf("Clean = (%q, %v), want default prefixes inactive", got, ok)
	}
}
