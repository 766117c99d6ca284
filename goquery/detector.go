package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Framework identifies the site generator that rendered a page.
type Framework string

// Supported frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkNextra     Framework = "nextra"
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
)

// layout describes where a framework puts page content and which elements
// inside it are chrome rather than text.
type layout struct {
	framework Framework
	markers   []string // any match identifies the framework
	content   []string // content containers, most specific first
	chrome    []string // removed from the content before conversion
}

// Checked in order. VitePress precedes VuePress because it reuses some of
// its markup.
var layouts = []layout{
	{
		framework: FrameworkNextra,
		markers:   []string{".nextra-nav-container", ".nextra-sidebar-container", ".nextra-toc", ".nextra-content"},
		content:   []string{"main article", "article", ".nextra-content", "main"},
		chrome:    []string{".nextra-toc", ".nextra-breadcrumb", ".subheading-anchor"},
	},
	{
		framework: FrameworkDocusaurus,
		markers:   []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container"},
		content:   []string{".theme-doc-markdown", "article"},
		chrome:    []string{".hash-link", ".theme-doc-toc-mobile", ".theme-doc-breadcrumbs"},
	},
	{
		framework: FrameworkMkDocs,
		markers:   []string{"[data-md-component]", "[data-md-color-scheme]"},
		content:   []string{".md-content__inner", "article"},
		chrome:    []string{".headerlink", ".md-source-file"},
	},
	{
		framework: FrameworkSphinx,
		markers:   []string{".sphinxsidebar", ".wy-nav-side", ".toctree-wrapper"},
		content:   []string{"[role='main']", ".body", ".document"},
		chrome:    []string{".headerlink"},
	},
	{
		framework: FrameworkVitePress,
		markers:   []string{"#VPContent", ".VPDoc"},
		content:   []string{".vp-doc", ".VPDoc"},
		chrome:    []string{".header-anchor", ".VPDocAsideOutline"},
	},
	{
		framework: FrameworkVuePress,
		markers:   []string{".theme-default-content", ".vuepress-navbar"},
		content:   []string{".theme-default-content"},
		chrome:    []string{".header-anchor"},
	},
}

var fallbackLayout = layout{
	framework: FrameworkUnknown,
	content:   []string{"main", "article", "body"},
}

// Always removed from page content.
const boilerplate = "script, style, noscript, template, nav, footer, aside, button, svg"

// Detect identifies the framework that rendered doc. The meta generator tag
// is checked first, then framework-specific markup.
func Detect(doc *goquery.Document) Framework {
	if generator, ok := doc.Find("meta[name='generator']").Attr("content"); ok {
		generator = strings.ToLower(generator)
		for _, l := range layouts {
			if strings.Contains(generator, string(l.framework)) {
				return l.framework
			}
		}
	}

	for _, l := range layouts {
		for _, marker := range l.markers {
			if doc.Find(marker).Length() > 0 {
				return l.framework
			}
		}
	}

	return FrameworkUnknown
}

func layoutFor(f Framework) layout {
	for _, l := range layouts {
		if l.framework == f {
			return l
		}
	}
	return fallbackLayout
}

// contentSelection returns the first non-empty content container of doc
// for the layout, falling back to the generic containers.
func (l layout) contentSelection(doc *goquery.Document) *goquery.Selection {
	selectors := append(append([]string{}, l.content...), fallbackLayout.content...)
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			return sel
		}
	}
	return doc.Selection
}
