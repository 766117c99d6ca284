// Package mdx parses MDX content pages into searchable documents.
package mdx

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docsearch"
	"gopkg.in/yaml.v3"
)

// Ensure Parser implements docsearch.Parser at compile time.
var _ docsearch.Parser = (*Parser)(nil)

var (
	metadataTitleRe  = regexp.MustCompile(`export` + ws + `+const` + ws + `+metadata` + ws + `*=` + ws + `*\{[\s\S]*?title:` + ws + `*['"]([^'"]+)['"]`)
	frontmatterBlkRe = regexp.MustCompile(`\A---\r?\n([\s\S]*?)\r?\n---`)
	h1Re             = regexp.MustCompile(`(?m)^#` + ws + `+(.+)$`)
)

// Parser extracts the title, plain text and second-level sections of an
// MDX page.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts MDX source into a Page. Sections are read from the raw
// source, including headings that appear inside code fences.
func (p *Parser) Parse(content string) (*docsearch.Page, error) {
	if !utf8.ValidString(content) {
		return nil, docsearch.Errorf(docsearch.EINVALID, "content is not valid UTF-8")
	}

	return &docsearch.Page{
		Title:    Title(content),
		Text:     Text(content),
		Sections: docsearch.ExtractSections(content),
	}, nil
}

// Title returns the page title from the metadata export, then from YAML
// frontmatter, then from the first top-level heading. It returns an empty
// string when none is present.
func Title(content string) string {
	if m := metadataTitleRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if title := frontmatterTitle(content); title != "" {
		return title
	}
	if m := h1Re.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// frontmatterTitle returns the title field of a leading YAML frontmatter
// block. Malformed frontmatter yields no title.
func frontmatterTitle(content string) string {
	m := frontmatterBlkRe.FindStringSubmatch(content)
	if m == nil {
		return ""
	}

	var fm struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal([]byte(m[1]), &fm); err != nil {
		return ""
	}
	return strings.TrimSpace(fm.Title)
}
