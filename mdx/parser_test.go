package mdx_test

import (
	"testing"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/mdx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const soraPage = `import { Callout } from 'nextra/components'

export const metadata = {
  title: 'Sora 视频生成',
  description: 'Sora API',
}

# Sora 视频生成

<Callout type="info">使用 Sora 模型生成视频</Callout>

## 参数

| 名称 | 说明 |

## Request Body

` + "```json\n{\"model\": \"sora\"}\n```\n"

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts title text and sections", func(t *testing.T) {
		t.Parallel()

		page, err := mdx.NewParser().Parse(soraPage)

		require.NoError(t, err)
		assert.Equal(t, "Sora 视频生成", page.Title)
		assert.Equal(t, []docsearch.Section{
			{Title: "参数", Anchor: "参数"},
			{Title: "Request Body", Anchor: "request-body"},
		}, page.Sections)
		assert.Contains(t, page.Text, "使用 Sora 模型生成视频")
		assert.NotContains(t, page.Text, "import")
		assert.NotContains(t, page.Text, "sora\"")
		assert.NotContains(t, page.Text, "#")
	})

	t.Run("reads sections inside code fences", func(t *testing.T) {
		t.Parallel()

		page, err := mdx.NewParser().Parse("```md\n## Example\n```\n")

		require.NoError(t, err)
		require.Len(t, page.Sections, 1)
		assert.Equal(t, "Example", page.Sections[0].Title)
		assert.Empty(t, page.Text)
	})

	t.Run("rejects invalid UTF-8", func(t *testing.T) {
		t.Parallel()

		_, err := mdx.NewParser().Parse("bad \xff\xfe bytes")

		require.Error(t, err)
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})
}

func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "metadata export with single quotes",
			in:   "export const metadata = {\n  title: 'From Metadata',\n}\n# From Heading",
			want: "From Metadata",
		},
		{
			name: "metadata export with double quotes",
			in:   `export const metadata = { description: "d", title: "Double" }`,
			want: "Double",
		},
		{
			name: "metadata export with a no-break space",
			in:   "export const\u00a0metadata = { title: 'X' }\n# H1",
			want: "X",
		},
		{
			name: "H1 with an ideographic space",
			in:   "#\u3000标题",
			want: "标题",
		},
		{
			name: "YAML frontmatter",
			in:   "---\ntitle: From Frontmatter\n---\n# From Heading",
			want: "From Frontmatter",
		},
		{
			name: "malformed frontmatter falls back to heading",
			in:   "---\ntitle: [unclosed\n---\n# From Heading",
			want: "From Heading",
		},
		{
			name: "first H1 heading",
			in:   "intro\n# First\n# Second",
			want: "First",
		},
		{
			name: "H2 is not a title",
			in:   "## Only Section",
			want: "",
		},
		{
			name: "no title",
			in:   "plain text",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, mdx.Title(tt.in))
		})
	}
}
