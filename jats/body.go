package jats

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/markup"
	"github.com/lehigh-university-libraries/jatstemplate/model"
	"github.com/lehigh-university-libraries/jatstemplate/textparser"
)

const (
	mimeHTML = "text/html"
	mimePDF  = "application/pdf"
)

// BodyBuilder extracts the full text of an article from its galleys.
type BodyBuilder struct {
	Files       host.SubmissionFiles
	FileService host.FileService
	// Parsers extracts text from non-HTML galleys. Defaults to
	// textparser.DefaultRegistry.
	Parsers *textparser.Registry
	Logger  *slog.Logger
}

// Build returns the body of the first galley that yields text, trying
// HTML galleys first, then PDF, then the rest in their given order. It
// returns nil when no galley yields text. Galleys whose files are missing
// or unreadable are skipped.
func (b *BodyBuilder) Build(ctx context.Context, galleys []model.Galley) (*XMLBody, error) {
	if b.Files == nil || b.FileService == nil || len(galleys) == 0 {
		return nil, nil
	}

	for _, g := range orderGalleys(galleys) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := b.extract(ctx, g)
		if err != nil {
			b.logger().Debug("skipping galley", "galley", g.ID, "submission_file", g.SubmissionFileID, "error", err)
			continue
		}
		if content != "" {
			return &XMLBody{Content: content}, nil
		}
	}

	return nil, nil
}

// orderGalleys sorts a copy of galleys by file type priority.
func orderGalleys(galleys []model.Galley) []model.Galley {
	ordered := make([]model.Galley, len(galleys))
	copy(ordered, galleys)
	sort.SliceStable(ordered, func(i, j int) bool {
		return galleyRank(ordered[i].FileType) < galleyRank(ordered[j].FileType)
	})
	return ordered
}

func galleyRank(fileType string) int {
	switch normalizeMIME(fileType) {
	case mimeHTML:
		return 0
	case mimePDF:
		return 1
	default:
		return 2
	}
}

// extract returns the JATS body content of one galley, or "" when the
// galley has no text.
func (b *BodyBuilder) extract(ctx context.Context, g model.Galley) (string, error) {
	file, err := b.Files.Get(ctx, g.SubmissionFileID)
	if err != nil {
		return "", fmt.Errorf("resolving submission file: %w", err)
	}

	mimeType := b.mimeType(ctx, file, g)

	r, err := b.FileService.Open(ctx, file.FileID)
	if err != nil {
		return "", fmt.Errorf("opening file %d: %w", file.FileID, err)
	}
	defer r.Close()

	if mimeType == mimeHTML {
		return markup.Body(r)
	}

	parsers := b.Parsers
	if parsers == nil {
		parsers = textparser.DefaultRegistry
	}
	parser, ok := parsers.Get(mimeType)
	if !ok {
		return "", fmt.Errorf("no text parser for %q", mimeType)
	}

	text, err := parser.Parse(ctx, r)
	if err != nil {
		return "", fmt.Errorf("parsing with %s: %w", parser.Name(), err)
	}
	defer text.Close()

	data, err := io.ReadAll(text)
	if err != nil {
		return "", fmt.Errorf("reading text from %s: %w", parser.Name(), err)
	}
	return markup.Paragraph(string(data)), nil
}

// mimeType prefers the type the file service detects over the stored and
// galley types.
func (b *BodyBuilder) mimeType(ctx context.Context, file *model.SubmissionFile, g model.Galley) string {
	if mt, err := b.FileService.MIMEType(ctx, file.FileID); err == nil && mt != "" {
		return normalizeMIME(mt)
	}
	if file.MIMEType != "" {
		return normalizeMIME(file.MIMEType)
	}
	return normalizeMIME(g.FileType)
}

func (b *BodyBuilder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func normalizeMIME(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
