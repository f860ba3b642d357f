// Package plain provides a text parser for plain-text galleys.
package plain

import (
	"context"
	"io"

	"github.com/lehigh-university-libraries/jatstemplate/textparser"
)

// Parser passes plain text through unchanged.
type Parser struct{}

var _ textparser.Parser = (*Parser)(nil)

// Name returns the parser identifier.
func (p *Parser) Name() string {
	return "plain"
}

// Description returns a human-readable parser description.
func (p *Parser) Description() string {
	return "Plain text"
}

// MIMETypes returns the media types this parser handles.
func (p *Parser) MIMETypes() []string {
	return []string{"text/plain"}
}

// Parse returns the content as is.
func (p *Parser) Parse(_ context.Context, r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func init() {
	textparser.Register(&Parser{})
}
