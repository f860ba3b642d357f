package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// renderRules controls how an HTML fragment is rewritten as JATS.
type renderRules struct {
	// tags maps HTML element names to JATS element names. Unlisted elements
	// are dropped and their text kept.
	tags map[string]string
	// links turns <a href> into ext-link.
	links bool
	// paragraphs wraps character data outside a block in an implicit <p>.
	paragraphs bool
}

var inlineTags = map[string]string{
	"b":      "bold",
	"strong": "bold",
	"i":      "italic",
	"em":     "italic",
	"u":      "underline",
	"sup":    "sup",
	"sub":    "sub",
}

var (
	inlineRules = renderRules{tags: inlineTags, links: true}

	bodyRules = renderRules{
		tags:       map[string]string{"p": "p", "em": "italic", "strong": "bold"},
		paragraphs: true,
	}

	// titleRules also accepts the JATS names MapInline produces.
	titleRules = renderRules{tags: withTags(inlineTags, "bold", "italic", "underline"), links: true}
)

func withTags(base map[string]string, names ...string) map[string]string {
	tags := make(map[string]string, len(base)+len(names))
	for k, v := range base {
		tags[k] = v
	}
	for _, name := range names {
		tags[name] = name
	}
	return tags
}

// render rewrites an HTML fragment as a well-formed JATS fragment.
func render(fragment string, rules renderRules) string {
	w := &jatsWriter{paragraphs: rules.paragraphs}
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			w.closeAll()
			return w.b.String()

		case html.TextToken:
			w.text(string(z.Text()))

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag == "a" && rules.links {
				if href := hrefAttr(z, hasAttr); href != "" {
					w.open("ext-link", ` ext-link-type="uri" xlink:href="`+Escape(href)+`"`)
				}
				continue
			}
			if jats, ok := rules.tags[tag]; ok {
				w.open(jats, "")
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "a" && rules.links {
				w.close("ext-link")
				continue
			}
			if jats, ok := rules.tags[tag]; ok {
				w.close(jats)
			}
		}
	}
}

func hrefAttr(z *html.Tokenizer, hasAttr bool) string {
	return strings.TrimSpace(attr(z, hasAttr, "href"))
}

func attr(z *html.Tokenizer, hasAttr bool, key string) string {
	var val string
	for hasAttr {
		var k, v []byte
		k, v, hasAttr = z.TagAttr()
		if string(k) == key && val == "" {
			val = string(v)
		}
	}
	return val
}

// jatsWriter emits JATS elements while keeping a stack of open elements so
// the output is always balanced.
type jatsWriter struct {
	b          strings.Builder
	stack      []string
	paragraphs bool
}

func (w *jatsWriter) open(name, attrs string) {
	if name == "p" {
		w.closeAll()
	} else if w.paragraphs && len(w.stack) == 0 {
		w.push("p", "")
	}
	w.push(name, attrs)
}

func (w *jatsWriter) push(name, attrs string) {
	w.b.WriteString("<" + name + attrs + ">")
	w.stack = append(w.stack, name)
}

func (w *jatsWriter) text(s string) {
	if s == "" {
		return
	}
	if w.paragraphs && len(w.stack) == 0 {
		if strings.TrimSpace(s) == "" {
			return
		}
		w.push("p", "")
	}
	w.b.WriteString(Escape(cleanText(s)))
}

func (w *jatsWriter) close(name string) {
	at := -1
	for i := len(w.stack) - 1; i >= 0; i-- {
		if w.stack[i] == name {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	for len(w.stack) > at {
		w.pop()
	}
}

func (w *jatsWriter) pop() {
	name := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	w.b.WriteString("</" + name + ">")
}

func (w *jatsWriter) closeAll() {
	for len(w.stack) > 0 {
		w.pop()
	}
}
