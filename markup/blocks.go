package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/lehigh-university-libraries/jatstemplate/helpers"
)

// Blocks converts abstract or biography HTML into JATS paragraphs and
// lists. Loose inline content between blocks becomes its own paragraph.
// When the document yields no structured blocks but still has text, the
// stripped text is returned as a single paragraph. Empty input yields "".
func Blocks(htmlText string) string {
	if strings.TrimSpace(htmlText) == "" {
		return ""
	}

	sanitized := blockPolicy().Sanitize(htmlText)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitized))
	if err == nil {
		if out := blocksFromDocument(doc); out != "" {
			return out
		}
	}

	text := helpers.StripHTML(htmlText)
	if text == "" {
		return ""
	}
	return "<p>" + Escape(text) + "</p>"
}

func blocksFromDocument(doc *goquery.Document) string {
	var b strings.Builder
	var pending strings.Builder

	flush := func() {
		if p := paragraph(pending.String()); p != "" {
			b.WriteString(p)
		}
		pending.Reset()
	}

	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		switch {
		case node.Type == html.TextNode:
			pending.WriteString(Escape(node.Data))

		case node.Type == html.ElementNode && node.Data == "p":
			flush()
			inner, _ := s.Html()
			b.WriteString(paragraph(inner))

		case node.Type == html.ElementNode && (node.Data == "ul" || node.Data == "ol"):
			flush()
			b.WriteString(list(s))

		case node.Type == html.ElementNode && node.Data == "br":
			flush()

		case node.Type == html.ElementNode:
			outer, _ := goquery.OuterHtml(s)
			pending.WriteString(outer)
		}
	})
	flush()

	return b.String()
}

// paragraph renders inline HTML as one JATS paragraph, or "" when it has no text.
func paragraph(inner string) string {
	content := strings.TrimSpace(render(inner, inlineRules))
	if helpers.IsBlankHTML(content) {
		return ""
	}
	return "<p>" + content + "</p>"
}

func list(s *goquery.Selection) string {
	listType := "bullet"
	if goquery.NodeName(s) == "ol" {
		listType = "order"
	}

	var items strings.Builder
	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		inner, _ := li.Html()
		if p := paragraph(inner); p != "" {
			items.WriteString("<list-item>" + p + "</list-item>")
		}
	})
	if items.Len() == 0 {
		return ""
	}
	return `<list list-type="` + listType + `">` + items.String() + "</list>"
}
