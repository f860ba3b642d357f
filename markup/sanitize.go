package markup

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// emptyParagraphRegex matches paragraphs with no word characters left after sanitizing.
var emptyParagraphRegex = regexp.MustCompile(`<p>[\W]*</p>`)

// bodyPolicy keeps paragraphs and basic emphasis from a full-text HTML galley.
// A new policy is built on every call.
func bodyPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "em", "strong")
	policy.SkipElementsContent("head", "title", "script", "style")
	return policy
}

// blockPolicy keeps the paragraph, list and inline subset allowed in
// abstracts and biographies.
func blockPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "ul", "ol", "li", "b", "strong", "i", "em", "u", "sup", "sub")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowStandardURLs()
	policy.RequireParseableURLs(true)
	return policy
}

// Body sanitizes an HTML galley and returns its paragraphs as JATS. The
// result is empty when the document has no paragraph text.
func Body(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading html galley: %w", err)
	}
	text := emptyParagraphRegex.ReplaceAllString(string(bodyPolicy().SanitizeBytes(raw)), "")
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	out := emptyParagraphRegex.ReplaceAllString(render(text, bodyRules), "")
	return strings.TrimSpace(out), nil
}
