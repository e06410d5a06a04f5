// Package markdown converts Markdown documents to plain text so their prose
// can be run through grammar correction.
package markdown

import (
	"bytes"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToPlainText renders md and strips the markup, leaving only the prose.
func ToPlainText(md []byte) string {
	return stripTags(toHTML(md))
}

func toHTML(md []byte) string {
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	p := parser.NewWithExtensions(parser.CommonExtensions)
	return string(markdown.Render(p.Parse(md), renderer))
}

func stripTags(htmlContent string) string {
	var result bytes.Buffer
	inTag := false

	for _, ch := range htmlContent {
		switch ch {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				result.WriteRune(ch)
			}
		}
	}

	return result.String()
}
