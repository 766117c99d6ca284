// Package goquery parses rendered HTML pages into searchable documents.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mdx"
)

// Ensure Parser implements docsearch.Parser at compile time.
var _ docsearch.Parser = (*Parser)(nil)

// escapedRe matches backslash escapes emitted by the Markdown converter.
var escapedRe = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]()#+\\-.!<>~|])")

// Parser extracts the title, plain text and second-level sections of an
// exported HTML page. Page content is located with framework-specific
// selectors, converted to Markdown and stripped to text the same way MDX
// sources are.
type Parser struct {
	conv docsearch.Converter
}

// NewParser creates a Parser that converts content with conv.
func NewParser(conv docsearch.Converter) *Parser {
	return &Parser{conv: conv}
}

// Parse converts an HTML document into a Page.
func (p *Parser) Parse(content string) (*docsearch.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	l := layoutFor(Detect(doc))
	main := l.contentSelection(doc)

	// Anchor ids can live on chrome elements, so read them before removal
	headings := main.Find("h2")
	anchors := make([]string, headings.Length())
	headings.Each(func(i int, h *goquery.Selection) {
		anchors[i] = headingID(h)
	})

	main.Find(boilerplate).Remove()
	for _, selector := range l.chrome {
		main.Find(selector).Remove()
	}

	var sections []docsearch.Section
	headings.Each(func(i int, h *goquery.Selection) {
		title := collapse(h.Text())
		if title == "" {
			return
		}
		anchor := anchors[i]
		if anchor == "" {
			anchor = docsearch.Slugify(title)
		}
		sections = append(sections, docsearch.Section{Title: title, Anchor: anchor})
	})

	html, err := main.Html()
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to render content: %v", err)
	}
	md, err := p.conv.Convert(html)
	if err != nil {
		return nil, err
	}

	return &docsearch.Page{
		Title:    pageTitle(doc, main),
		Text:     mdx.Text(escapedRe.ReplaceAllString(md, "$1")),
		Sections: sections,
	}, nil
}

// pageTitle returns the first top-level heading, preferring one inside the
// content, then the document title.
func pageTitle(doc *goquery.Document, main *goquery.Selection) string {
	if title := collapse(main.Find("h1").First().Text()); title != "" {
		return title
	}
	if title := collapse(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return collapse(doc.Find("title").First().Text())
}

// headingID returns the id of a heading or of the first descendant that
// carries one.
func headingID(h *goquery.Selection) string {
	if id, ok := h.Attr("id"); ok && id != "" {
		return id
	}
	if id, ok := h.Find("[id]").First().Attr("id"); ok {
		return id
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
