package document

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown converts an entry body written in markdown to HTML.
func renderMarkdown(content string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(content))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})

	return strings.TrimSpace(string(markdown.Render(doc, renderer)))
}
