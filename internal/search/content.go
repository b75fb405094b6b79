package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Tags that mark a snippet as scraped HTML rather than prose that happens to
// contain angle brackets (generics, comparisons).
var markupTags = map[string]bool{
	"a": true, "b": true, "blockquote": true, "body": true, "br": true, "code": true,
	"div": true, "em": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "head": true, "hr": true, "html": true, "i": true, "img": true, "li": true,
	"noscript": true, "ol": true, "p": true, "pre": true, "script": true, "section": true,
	"article": true, "span": true, "strong": true, "style": true, "table": true, "td": true,
	"th": true, "tr": true, "u": true, "ul": true,
}

// Elements that never have a closing tag.
var voidTags = map[string]bool{"br": true, "hr": true, "img": true}

const blockSelector = "p, div, li, tr, h1, h2, h3, h4, h5, h6, blockquote, pre, section, article"

// CleanContent returns a snippet as retrieval context. Plain text is only
// trimmed. Snippets carrying real HTML are flattened to text, keeping one line
// per block element.
func CleanContent(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.Contains(text, "<") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil || !hasMarkup(doc, strings.ToLower(text)) {
		return text
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).AppendHtml("\n")
	return tidyLines(doc.Find("body").Text())
}

// hasMarkup reports whether the parsed snippet contains a known element that
// was really written as a tag: void elements count as is, others need their
// closing tag in the source.
func hasMarkup(doc *goquery.Document, lowered string) bool {
	found := false
	doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name := goquery.NodeName(s)
		if markupTags[name] && (voidTags[name] || strings.Contains(lowered, "</"+name)) {
			found = true
		}
		return !found
	})
	return found
}

func tidyLines(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
