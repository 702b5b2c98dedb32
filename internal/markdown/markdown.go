// Package markdown turns markdown input into the plain prose the humanize
// pipeline works on.
package markdown

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// ToHTML renders md without smart punctuation, so straight apostrophes in
// contractions survive, and drops raw HTML blocks.
func ToHTML(md []byte) string {
	opts := mdhtml.RendererOptions{
		Flags: mdhtml.SkipHTML,
	}
	renderer := mdhtml.NewRenderer(opts)
	ext := parser.CommonExtensions | parser.Attributes
	p := parser.NewWithExtensions(ext)
	doc := p.Parse(md)
	return string(markdown.Render(doc, renderer))
}

// ToPlainText renders md, strips tags, unescapes entities, and collapses runs
// of blank lines to a single paragraph break.
func ToPlainText(md []byte) string {
	text := html.UnescapeString(StripHTMLTags(ToHTML(md)))

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	text = strings.Join(lines, "\n")

	return strings.TrimSpace(blankRuns.ReplaceAllString(text, "\n\n"))
}

func StripHTMLTags(htmlContent string) string {
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
