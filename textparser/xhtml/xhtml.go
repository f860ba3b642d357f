// Package xhtml provides a text parser for XHTML and generic XML galleys.
package xhtml

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lehigh-university-libraries/jatstemplate/helpers"
	"github.com/lehigh-university-libraries/jatstemplate/textparser"
)

// Parser extracts the character data of an XHTML or XML document.
type Parser struct{}

var _ textparser.Parser = (*Parser)(nil)

// Name returns the parser identifier.
func (p *Parser) Name() string {
	return "xhtml"
}

// Description returns a human-readable parser description.
func (p *Parser) Description() string {
	return "XHTML and XML character data"
}

// MIMETypes returns the media types this parser handles.
func (p *Parser) MIMETypes() []string {
	return []string{"application/xhtml+xml", "application/xml", "text/xml"}
}

// Parse returns the document text with scripts and styles removed and
// whitespace collapsed.
func (p *Parser) Parse(_ context.Context, r io.Reader) (io.ReadCloser, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	doc.Find("script, style, head").Remove()
	text := helpers.NormalizeWhitespace(doc.Text())
	return io.NopCloser(strings.NewReader(text)), nil
}

func init() {
	textparser.Register(&Parser{})
}
