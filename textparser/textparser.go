// Package textparser defines the plug-in interface for extracting plain
// text from non-HTML galley files.
package textparser

import (
	"context"
	"io"
)

// Parser extracts plain text from one or more file types.
type Parser interface {
	// Name returns the parser identifier (e.g., "plain", "pdftotext").
	Name() string

	// Description returns a human-readable parser description.
	Description() string

	// MIMETypes returns the media types this parser handles.
	MIMETypes() []string

	// Parse reads the file content and returns a reader over its text.
	// The caller must close the returned reader.
	Parse(ctx context.Context, r io.Reader) (io.ReadCloser, error)
}
