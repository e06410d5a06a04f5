package markdown

import (
	"strings"
	"testing"
)

func TestToPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and paragraph",
			input:    "# Title\n\nsome prose here",
			contains: []string{"Title", "some prose here"},
			excludes: []string{"#", "<h1>"},
		},
		{
			name:     "emphasis stripped",
			input:    "this is *important* and **bold**",
			contains: []string{"important", "bold"},
			excludes: []string{"*", "<em>", "<strong>"},
		},
		{
			name:     "link text kept",
			input:    "see [the docs](https://example.com) for more",
			contains: []string{"the docs", "for more"},
			excludes: []string{"](", "<a"},
		},
		{
			name:     "list items",
			input:    "- first item\n- second item",
			contains: []string{"first item", "second item"},
			excludes: []string{"- ", "<li>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPlainText([]byte(tt.input))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToPlainText(%q) = %q, missing %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("ToPlainText(%q) = %q, still contains %q", tt.input, got, bad)
				}
			}
		})
	}
}

func TestToPlainText_Empty(t *testing.T) {
	if got := strings.TrimSpace(ToPlainText(nil)); got != "" {
		t.Errorf("ToPlainText(nil) = %q, want empty", got)
	}
}
