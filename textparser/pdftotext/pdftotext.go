// Package pdftotext provides a text parser for PDF galleys backed by the
// poppler pdftotext binary.
package pdftotext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrUnavailable is returned when the pdftotext binary cannot be found.
var ErrUnavailable = errors.New("pdftotext binary not available")

// Parser pipes PDF content through pdftotext.
type Parser struct {
	// Binary is the executable to run. Defaults to "pdftotext" on PATH.
	Binary string
}

// Name returns the parser identifier.
func (p *Parser) Name() string {
	return "pdftotext"
}

// Description returns a human-readable parser description.
func (p *Parser) Description() string {
	return "PDF via poppler pdftotext"
}

// MIMETypes returns the media types this parser handles.
func (p *Parser) MIMETypes() []string {
	return []string{"application/pdf"}
}

// Parse runs pdftotext with the PDF on stdin and returns its UTF-8 output.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (io.ReadCloser, error) {
	bin := p.Binary
	if bin == "" {
		bin = "pdftotext"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-q", "-enc", "UTF-8", "-", "-")
	cmd.Stdin = r
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running pdftotext: %w (%s)", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return io.NopCloser(bytes.NewReader(out)), nil
}
