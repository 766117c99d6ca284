package goquery_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/fwojciec/docsearch/htmltomarkdown"
	"github.com/fwojciec/docsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nextraPage = `<html>
<head><title>Sora - Docs</title><meta name="generator" content="Nextra"></head>
<body>
<nav class="nextra-nav-container">Menu</nav>
<main>
<article>
<h1>Sora 视频生成</h1>
<p>使用 <a href="/docs/zh-CN/models">Sora</a> 模型生成视频</p>
<h2>参数<a href="#参数" id="参数" class="subheading-anchor"></a></h2>
<p>duration_seconds 说明</p>
<pre><code class="language-bash">curl https://api.example.com</code></pre>
<h2 id="request-body">Request Body</h2>
<script>var tracking = 1</script>
</article>
<nav class="nextra-toc">On This Page</nav>
</main>
<footer>Copyright</footer>
</body>
</html>`

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts nextra page content", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewParser(htmltomarkdown.NewConverter()).Parse(nextraPage)

		require.NoError(t, err)
		assert.Equal(t, "Sora 视频生成", page.Title)
		assert.Equal(t, []docsearch.Section{
			{Title: "参数", Anchor: "参数"},
			{Title: "Request Body", Anchor: "request-body"},
		}, page.Sections)
		assert.Contains(t, page.Text, "使用 Sora 模型生成视频")
		assert.Contains(t, page.Text, "durationseconds")
		assert.NotContains(t, page.Text, `\`)
		assert.NotContains(t, page.Text, "Menu")
		assert.NotContains(t, page.Text, "On This Page")
		assert.NotContains(t, page.Text, "Copyright")
		assert.NotContains(t, page.Text, "tracking")
		assert.NotContains(t, page.Text, "curl")
	})

	t.Run("extracts docusaurus headings with hash links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div id="__docusaurus_skipToContent_fallback">
<article><div class="theme-doc-markdown markdown">
<header><h1>Intro</h1></header>
<h2 class="anchor" id="setup">Setup<a class="hash-link" href="#setup">#</a></h2>
<p>Install it</p>
</div></article>
</div>
</body></html>`

		page, err := goquery.NewParser(htmltomarkdown.NewConverter()).Parse(html)

		require.NoError(t, err)
		assert.Equal(t, "Intro", page.Title)
		assert.Equal(t, []docsearch.Section{{Title: "Setup", Anchor: "setup"}}, page.Sections)
		assert.Contains(t, page.Text, "Install it")
	})

	t.Run("falls back to document title and body", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Only Title</title></head><body><p>Body text</p><h2>Next Steps</h2></body></html>`

		page, err := goquery.NewParser(htmltomarkdown.NewConverter()).Parse(html)

		require.NoError(t, err)
		assert.Equal(t, "Only Title", page.Title)
		assert.Equal(t, []docsearch.Section{{Title: "Next Steps", Anchor: "next-steps"}}, page.Sections)
		assert.Equal(t, "Body text Next Steps", page.Text)
	})

	t.Run("passes content through the converter", func(t *testing.T) {
		t.Parallel()

		var got string
		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				got = html
				return "## Converted *text*", nil
			},
		}

		page, err := goquery.NewParser(conv).Parse(`<html><body><main><p>Original</p></main></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, got, "<p>Original</p>")
		assert.Equal(t, "Converted text", page.Text)
	})

	t.Run("returns converter errors", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("boom")
			},
		}

		_, err := goquery.NewParser(conv).Parse(`<html><body><p>x</p></body></html>`)

		require.Error(t, err)
	})
}
