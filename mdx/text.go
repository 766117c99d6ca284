package mdx

import (
	"regexp"
	"strings"
)

// ws matches one whitespace character, Unicode spaces such as U+3000 and
// U+00A0 included.
const ws = `[\s\p{Z}\x{FEFF}]`

var (
	metadataRe    = regexp.MustCompile(`export` + ws + `+const` + ws + `+metadata` + ws + `*=` + ws + `*\{[\s\S]*?\}`)
	importRe      = regexp.MustCompile(`import` + ws + `+.*?from` + ws + `+['"].*?['"]`)
	selfClosingRe = regexp.MustCompile(`<(\w+)[^>]*/>`)
	codeFenceRe   = regexp.MustCompile("```[\\s\\S]*?```")
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	imageRe       = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	commentRe     = regexp.MustCompile(`<!--[\s\S]*?-->`)
	frontmatterRe = regexp.MustCompile(`^---[\s\S]*?---`)
	markupRe      = regexp.MustCompile("[*_~`#]+")
)

// Text strips MDX markup from source and returns plain text with whitespace
// collapsed to single spaces.
//
// The steps run in a fixed order and each runs once over the output of the
// previous one. Links are rewritten before images are removed, so an image
// reference leaves its "!alt" text behind.
func Text(source string) string {
	s := metadataRe.ReplaceAllString(source, "")
	s = importRe.ReplaceAllString(s, "")
	s = selfClosingRe.ReplaceAllString(s, "")
	s = unwrapTags(s)
	s = codeFenceRe.ReplaceAllString(s, "")
	s = linkRe.ReplaceAllString(s, "$1")
	s = imageRe.ReplaceAllString(s, "")
	s = commentRe.ReplaceAllString(s, "")
	s = frontmatterRe.ReplaceAllString(s, "")
	s = markupRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// unwrapTags replaces each paired element <name ...>body</name> with its
// body in a single left-to-right pass. Bodies are not rescanned, so nested
// elements keep their inner tags.
//
// The closing tag may name any prefix of the opening tag name; the longest
// prefix with a matching closing tag wins.
func unwrapTags(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '<' {
			if body, end, ok := pairedTag(s, i); ok {
				b.WriteString(body)
				i = end
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// pairedTag reports whether a paired element starts at s[start] and returns
// its body and the offset just past its closing tag.
func pairedTag(s string, start int) (body string, end int, ok bool) {
	nameEnd := start + 1
	for nameEnd < len(s) && isWordByte(s[nameEnd]) {
		nameEnd++
	}
	if nameEnd == start+1 {
		return "", 0, false
	}

	gt := strings.IndexByte(s[nameEnd:], '>')
	if gt == -1 {
		return "", 0, false
	}
	bodyStart := nameEnd + gt + 1

	for n := nameEnd; n > start+1; n-- {
		closing := "</" + s[start+1:n] + ">"
		if idx := strings.Index(s[bodyStart:], closing); idx != -1 {
			return s[bodyStart : bodyStart+idx], bodyStart + idx + len(closing), true
		}
	}
	return "", 0, false
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
