// Package markup converts the small subset of HTML that journal metadata
// carries into JATS inline and paragraph markup.
//
// MapInline and MapEscapedInline are plain string substitutions for hosts
// that hold title markup in literal or entity-escaped form. InlineFragment,
// Blocks and Body parse their input and always return well-formed XML.
package markup

import (
	"regexp"
	"strings"
)

// literalInline is the fixed title tag map. Matching is case-sensitive.
var literalInline = strings.NewReplacer(
	"<b>", "<bold>",
	"</b>", "</bold>",
	"<i>", "<italic>",
	"</i>", "</italic>",
	"<u>", "<underline>",
	"</u>", "</underline>",
)

// escapedInline maps entity-escaped HTML formatting tags to JATS tags.
var escapedInline = strings.NewReplacer(
	"&lt;i&gt;", "<italic>",
	"&lt;/i&gt;", "</italic>",
	"&lt;em&gt;", "<italic>",
	"&lt;/em&gt;", "</italic>",
	"&lt;b&gt;", "<bold>",
	"&lt;/b&gt;", "</bold>",
	"&lt;strong&gt;", "<bold>",
	"&lt;/strong&gt;", "</bold>",
	"&lt;u&gt;", "<underline>",
	"&lt;/u&gt;", "</underline>",
	"&lt;sup&gt;", "<sup>",
	"&lt;/sup&gt;", "</sup>",
	"&lt;sub&gt;", "<sub>",
	"&lt;/sub&gt;", "</sub>",
	"&lt;/a&gt;", "</ext-link>",
)

var (
	// An escaped opening anchor. The lazy match stops at the first escaped '>'.
	escapedAnchorRegex = regexp.MustCompile(`(?i)&lt;a\s+(.*?)&gt;`)

	// The href attribute inside an escaped anchor, quoted with &quot; or '.
	escapedHrefRegex = regexp.MustCompile(`(?i)(?:^|\s)href=(?:&quot;|')(.*?)(?:&quot;|')`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
)

// MapInline replaces the literal tags <b>, <i>, <u> and their closing forms
// with bold, italic and underline. Nothing else is touched.
func MapInline(html string) string {
	return literalInline.Replace(html)
}

// MapEscapedInline converts entity-escaped formatting tags (&lt;b&gt; and
// friends) and anchors with an href into JATS elements. Escaped tags outside
// the fixed set stay escaped.
func MapEscapedInline(escaped string) string {
	mapped := escapedInline.Replace(escaped)
	return escapedAnchorRegex.ReplaceAllStringFunc(mapped, func(anchor string) string {
		attrs := escapedAnchorRegex.FindStringSubmatch(anchor)[1]
		href := escapedHrefRegex.FindStringSubmatch(attrs)
		if href == nil {
			return anchor
		}
		return `<ext-link ext-link-type="uri" xlink:href="` + href[1] + `">`
	})
}

// Escape escapes &, <, > and " the way the host escapes stored text, so
// the result is safe as XML character data and attribute values.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// InlineFragment returns a well-formed JATS fragment for a title-like HTML
// string. The literal title tags are mapped first, then the fragment is
// tokenized: the formatting subset and links become JATS elements, other
// tags are dropped with their text kept, entities are decoded once and
// unbalanced tags are closed or dropped.
func InlineFragment(html string) string {
	if html == "" {
		return ""
	}
	return render(MapInline(html), titleRules)
}
