package mdx_test

import (
	"testing"

	"github.com/fwojciec/docsearch/mdx"
	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "removes metadata export",
			in:   "export const metadata = {\n  title: 'Quick Start',\n}\n\n# Hello\n\nWorld",
			want: "Hello World",
		},
		{
			name: "removes import statements",
			in:   "import { Callout } from 'nextra/components'\n\nText",
			want: "Text",
		},
		{
			name: "removes metadata export separated by Unicode spaces",
			in:   "export\u3000const metadata\u00a0= { title: 'X' }\nBody",
			want: "Body",
		},
		{
			name: "removes self-closing tags",
			in:   `a <Image src="x.png" /> b`,
			want: "a b",
		},
		{
			name: "keeps inner text of paired tags",
			in:   `<Callout type="info">Note **this**</Callout>`,
			want: "Note this",
		},
		{
			name: "unwraps paired tags in a single pass",
			in:   "<A><A>x</A></A>",
			want: "<A>x</A>",
		},
		{
			name: "closes tag on a prefix of the opening name",
			in:   "<divx>body</div>",
			want: "body",
		},
		{
			name: "leaves unclosed tags",
			in:   "<Open>text",
			want: "<Open>text",
		},
		{
			name: "removes fenced code blocks",
			in:   "before\n```js\nconst x = 1\n```\nafter",
			want: "before after",
		},
		{
			name: "keeps link text",
			in:   "see [OpenAI SDK](https://example.com/sdk) docs",
			want: "see OpenAI SDK docs",
		},
		{
			name: "leaves bang and alt of images with alt text",
			in:   "![logo](logo.png)",
			want: "!logo",
		},
		{
			name: "removes images without alt text",
			in:   "a ![](logo.png) b",
			want: "a b",
		},
		{
			name: "removes HTML comments",
			in:   "a <!-- hidden --> b",
			want: "a b",
		},
		{
			name: "removes leading frontmatter",
			in:   "---\ntitle: X\n---\nBody",
			want: "Body",
		},
		{
			name: "removes markdown emphasis and heading marks",
			in:   "## Title\n\n*a* _b_ ~~c~~ `d`",
			want: "Title a b c d",
		},
		{
			name: "collapses whitespace",
			in:   "  one\n\n\ttwo   three  ",
			want: "one two three",
		},
		{
			name: "keeps CJK text",
			in:   "# 快速开始\n\nOmniMaaS 提供统一的 AI 模型接入服务",
			want: "快速开始 OmniMaaS 提供统一的 AI 模型接入服务",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, mdx.Text(tt.in))
		})
	}
}
