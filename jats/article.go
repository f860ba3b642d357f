// Package jats renders journal articles as JATS 1.2 Journal Publishing XML.
//
// The document is built as a typed tree (see xml.go) by three builders:
// FrontBuilder for journal-meta and article-meta, BodyBuilder for the full
// text and BuildBack for the reference list. Generator wires them to the
// host collaborators and serializes the result.
package jats

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/jatstemplate/helpers"
	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/mapping"
	"github.com/lehigh-university-libraries/jatstemplate/model"
	"github.com/lehigh-university-libraries/jatstemplate/textparser"
)

// ErrIncompleteRecord is returned when a record lacks its journal,
// submission or publication.
var ErrIncompleteRecord = errors.New("record is missing journal, submission or publication")

// Hook post-processes a finished article before it is serialized. A hook
// error aborts generation.
type Hook func(ctx context.Context, article *XMLArticle) error

// SerializeOptions control XML output.
type SerializeOptions struct {
	// Pretty indents the output.
	Pretty bool
}

// Generator produces JATS documents from records. All collaborators are
// optional: without them the related parts of the document are left out.
type Generator struct {
	Files       host.SubmissionFiles
	FileService host.FileService
	Citations   host.Citations
	URLs        host.URLDispatcher
	Parsers     *textparser.Registry
	Messages    *mapping.Catalog
	Logger      *slog.Logger

	// Options apply to Generate.
	Options SerializeOptions

	hooks []Hook
}

// AddHook registers a post-process hook. Hooks run in registration order.
func (g *Generator) AddHook(h Hook) {
	g.hooks = append(g.hooks, h)
}

// Generate builds and serializes the JATS document for a record.
func (g *Generator) Generate(ctx context.Context, rec *model.Record) ([]byte, error) {
	article, err := g.Build(ctx, rec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Serialize(&buf, article, &g.Options); err != nil {
		return nil, fmt.Errorf("serializing article: %w", err)
	}
	return buf.Bytes(), nil
}

// Build assembles the article tree for a record and runs the hooks.
func (g *Generator) Build(ctx context.Context, rec *model.Record) (*XMLArticle, error) {
	if rec == nil || rec.Journal == nil || rec.Submission == nil || rec.Submission.Publication == nil {
		return nil, ErrIncompleteRecord
	}

	front, err := (&FrontBuilder{
		Files:       g.Files,
		FileService: g.FileService,
		URLs:        g.URLs,
		Messages:    g.Messages,
		Logger:      g.logger(),
	}).Build(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("building front: %w", err)
	}

	body, err := (&BodyBuilder{
		Files:       g.Files,
		FileService: g.FileService,
		Parsers:     g.Parsers,
		Logger:      g.logger(),
	}).Build(ctx, rec.Submission.Galleys)
	if err != nil {
		return nil, fmt.Errorf("building body: %w", err)
	}

	citations, err := g.citations(ctx, rec.Submission.Publication)
	if err != nil {
		return nil, err
	}

	article := Assemble(front, body, BuildBack(citations), rec.Submission.Locale)
	if rec.Section != nil {
		article.ArticleType = articleType(rec.Section.IdentifyType.Prefer(rec.Submission.Locale, rec.Journal.PrimaryLocale))
	}

	for i, h := range g.hooks {
		if err := h(ctx, article); err != nil {
			return nil, fmt.Errorf("post-process hook %d: %w", i, err)
		}
	}

	g.logger().Debug("built article",
		"submission", rec.Submission.ID,
		"body", article.Body != nil,
		"refs", len(citations),
	)
	return article, nil
}

// citations prefers the publication's own citations and falls back to the
// citation store.
func (g *Generator) citations(ctx context.Context, pub *model.Publication) ([]model.Citation, error) {
	if len(pub.Citations) > 0 || g.Citations == nil {
		return pub.Citations, nil
	}
	citations, err := g.Citations.CitationsForPublication(ctx, pub.ID)
	if errors.Is(err, host.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading citations: %w", err)
	}
	return citations, nil
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// Assemble places front, body and back under the article root. body and
// back are left out when nil or empty.
func Assemble(front *XMLFront, body *XMLBody, back *XMLBack, locale string) *XMLArticle {
	article := &XMLArticle{
		XLink:      NamespaceXLink,
		MML:        NamespaceMML,
		XSI:        NamespaceXSI,
		Lang:       helpers.XMLLang(locale),
		DTDVersion: DTDVersion,
		Front:      front,
	}
	if body != nil && strings.TrimSpace(body.Content) != "" {
		article.Body = body
	}
	if back != nil && back.RefList != nil && len(back.RefList.Refs) > 0 {
		article.Back = back
	}
	return article
}

// Serialize writes the XML declaration, the DOCTYPE and the article.
func Serialize(w io.Writer, article *XMLArticle, opts *SerializeOptions) error {
	if opts == nil {
		opts = &SerializeOptions{}
	}

	if _, err := io.WriteString(w, xml.Header+Doctype+"\n"); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	if opts.Pretty {
		encoder.Indent("", "  ")
	}
	if err := encoder.Encode(article); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

var articleTypeRegex = regexp.MustCompile(`[^a-z0-9]+`)

// articleType turns a section's identify type ("Research Article") into an
// article-type token ("research-article").
func articleType(identifyType string) string {
	t := strings.ToLower(helpers.StripHTML(identifyType))
	return strings.Trim(articleTypeRegex.ReplaceAllString(t, "-"), "-")
}
