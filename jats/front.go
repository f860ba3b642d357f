package jats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/jatstemplate/helpers"
	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/mapping"
	"github.com/lehigh-university-libraries/jatstemplate/markup"
	"github.com/lehigh-university-libraries/jatstemplate/model"
)

// Custom meta names written into custom-meta-group.
const (
	MetaProductionReadyFile = "production-ready-file-url"
	MetaIssueCover          = "issue-cover"
)

// FrontBuilder renders journal-meta and article-meta.
type FrontBuilder struct {
	// Files lists production-ready files and resolves galley files. Optional.
	Files host.SubmissionFiles
	// FileService detects the MIME type of galley files. Optional.
	FileService host.FileService
	// URLs builds self-uri and download links. Without it no links are written.
	URLs host.URLDispatcher
	// Messages localizes fixed text. Defaults to the embedded catalog.
	Messages *mapping.Catalog
	Logger   *slog.Logger
}

// Build renders the front element of a record.
func (b *FrontBuilder) Build(ctx context.Context, rec *model.Record) (*XMLFront, error) {
	articleMeta, err := b.buildArticleMeta(ctx, rec)
	if err != nil {
		return nil, err
	}
	return &XMLFront{
		JournalMeta: b.buildJournalMeta(rec.Journal),
		ArticleMeta: articleMeta,
	}, nil
}

func (b *FrontBuilder) buildArticleMeta(ctx context.Context, rec *model.Record) (*XMLArticleMeta, error) {
	j, sub, pub := rec.Journal, rec.Submission, rec.Submission.Publication
	locale := sub.Locale
	locales := []string{locale, j.PrimaryLocale}

	meta := &XMLArticleMeta{
		ArticleIDs: []XMLPubID{{Type: "publisher-id", Value: strconv.Itoa(sub.ID)}},
	}
	if helpers.IsDOI(pub.DOI) {
		meta.ArticleIDs = append(meta.ArticleIDs, XMLPubID{Type: "doi", Value: helpers.NormalizeIdentifier(helpers.IdentifierDOI, pub.DOI)})
	}

	if rec.Section != nil {
		if subject := strings.TrimSpace(rec.Section.Title.Prefer(j.PrimaryLocale, locale)); subject != "" {
			meta.Categories = &XMLArticleCategories{SubjGroups: []XMLSubjGroup{{
				Type:     "heading",
				Lang:     helpers.XMLLang(j.PrimaryLocale),
				Subjects: []string{subject},
			}}}
		}
	}

	meta.TitleGroup = buildTitleGroup(pub, locales)
	meta.ContribGroup, meta.Affs = buildContribGroup(pub, locales)

	if d := publicationDate(pub, rec.Issue); d != nil {
		d.DateType = "pub"
		d.PublicationFormat = "epub"
		meta.PubDates = []XMLDate{*d}
	}

	if rec.Issue != nil {
		applyIssue(meta, rec.Issue, pub.Seq)
	}

	pages := pub.Pages
	if pages == "" {
		pages = sub.Pages
	}
	pageRange, hasPages := ParsePages(pages)
	if hasPages {
		meta.FPage = pageRange.First
		meta.LPage = pageRange.Last
	}

	if d := xmlDate(sub.DateSubmitted); d != nil {
		d.DateType = "received"
		meta.PubHistory = &XMLPubHistory{Events: []XMLEvent{{EventType: "received", Dates: []XMLDate{*d}}}}
	}

	meta.Permissions = b.buildPermissions(pub, locales)
	meta.SelfURIs = b.buildSelfURIs(ctx, j, sub)
	meta.Abstracts, meta.TransAbstracts = buildAbstracts(pub, locale)
	meta.KwdGroups = b.buildKeywords(pub, j.SupportedLocales)

	if hasPages && pageRange.Count > 0 {
		meta.Counts = &XMLCounts{PageCount: &XMLCount{Count: pageRange.Count}}
	}

	group, err := b.buildCustomMeta(ctx, j, sub, rec.Issue)
	if err != nil {
		return nil, err
	}
	meta.CustomMetaGroup = group

	return meta, nil
}

// buildTitleGroup renders the title in the first locale of locales that has
// one, and one trans-title-group per other locale. The subtitle is taken
// from the title's locale. Translations with no text are skipped.
func buildTitleGroup(pub *model.Publication, locales []string) *XMLTitleGroup {
	titleLocale, raw := pub.Title.PreferLocale(locales...)
	title := markup.InlineFragment(strings.TrimSpace(raw))
	if helpers.IsBlankHTML(title) {
		return nil
	}

	lang := helpers.XMLLang(titleLocale)
	group := &XMLTitleGroup{ArticleTitle: &XMLInline{Lang: lang, Content: title}}
	if subtitle := markup.InlineFragment(strings.TrimSpace(pub.Subtitle[titleLocale])); !helpers.IsBlankHTML(subtitle) {
		group.Subtitles = []XMLInline{{Lang: lang, Content: subtitle}}
	}

	for _, loc := range pub.Title.Locales() {
		if loc == titleLocale {
			continue
		}
		trans := markup.InlineFragment(strings.TrimSpace(pub.Title[loc]))
		if helpers.IsBlankHTML(trans) {
			continue
		}
		tg := XMLTransTitleGroup{Lang: helpers.XMLLang(loc), TransTitle: &XMLInline{Content: trans}}
		if sub := markup.InlineFragment(strings.TrimSpace(pub.Subtitle[loc])); !helpers.IsBlankHTML(sub) {
			tg.TransSubtitles = []XMLInline{{Content: sub}}
		}
		group.TransTitleGroups = append(group.TransTitleGroups, tg)
	}

	return group
}

// publicationDate prefers the publication date and falls back to the
// issue date.
func publicationDate(pub *model.Publication, issue *model.Issue) *XMLDate {
	if d := xmlDate(pub.DatePublished); d != nil {
		return d
	}
	if issue != nil {
		return xmlDate(issue.DatePublished)
	}
	return nil
}

// xmlDate parses a stored date, returning nil when it is empty or invalid.
func xmlDate(s string) *XMLDate {
	parsed, err := helpers.ParseDate(s)
	if err != nil || parsed.IsZero() {
		return nil
	}
	d := &XMLDate{Year: strconv.Itoa(parsed.Year)}
	if parsed.Month > 0 {
		d.Month = fmt.Sprintf("%02d", parsed.Month)
	}
	if parsed.Day > 0 {
		d.Day = fmt.Sprintf("%02d", parsed.Day)
	}
	return d
}

// applyIssue writes the issue linkage, each part gated by its display flag.
func applyIssue(meta *XMLArticleMeta, issue *model.Issue, seq int) {
	if v := strings.TrimSpace(issue.Volume); issue.ShowVolume && v != "" {
		meta.Volume = &XMLVolume{Seq: strconv.Itoa(seq + 1), Value: v}
	}
	if n := strings.TrimSpace(issue.Number); issue.ShowNumber && n != "" {
		meta.Issue = n
	}
	if issue.ID != 0 {
		meta.IssueID = &XMLPubID{Type: "ojs", Value: strconv.Itoa(issue.ID)}
	}
	if issue.ShowTitle {
		for _, loc := range issue.Title.Locales() {
			if t := helpers.StripHTML(issue.Title[loc]); t != "" {
				meta.IssueTitles = append(meta.IssueTitles, XMLLangText{Lang: helpers.XMLLang(loc), Value: t})
			}
		}
	}
}

// buildPermissions returns nil unless a copyright year, holder, license
// URL or license badge exists.
func (b *FrontBuilder) buildPermissions(pub *model.Publication, locales []string) *XMLPermissions {
	year := strings.TrimSpace(pub.CopyrightYear)
	holder := strings.TrimSpace(pub.CopyrightHolder.Prefer(locales...))
	licenseURL := strings.TrimSpace(pub.LicenseURL)
	badge := helpers.StripHTML(b.messages().LicenseBadge(licenseURL, locales[0]))

	if year == "" && holder == "" && licenseURL == "" && badge == "" {
		return nil
	}

	p := &XMLPermissions{CopyrightYear: year, CopyrightHolder: holder}
	if year != "" || holder != "" {
		p.CopyrightStatement = helpers.NormalizeWhitespace(b.messages().Translate(locales[0], mapping.KeyCopyrightStatement, map[string]string{
			"copyrightYear":   year,
			"copyrightHolder": holder,
		}))
	}
	if licenseURL != "" {
		// license requires at least one license-p.
		text := badge
		if text == "" {
			text = licenseURL
		}
		p.Licenses = []XMLLicense{{Href: licenseURL, LicenseP: []string{text}}}
	}
	return p
}

// buildSelfURIs links the article page, then each galley download with the
// galley's MIME type.
func (b *FrontBuilder) buildSelfURIs(ctx context.Context, j *model.Journal, sub *model.Submission) []XMLSelfURI {
	if b.URLs == nil {
		return nil
	}

	bestID := sub.BestID()
	uris := []XMLSelfURI{{Href: b.URLs.URL(host.RouteArticleView, []string{j.Path, bestID}, nil)}}
	for _, g := range sub.Galleys {
		uris = append(uris, XMLSelfURI{
			ContentType: b.galleyMIME(ctx, g),
			Href:        b.URLs.URL(host.RouteGalleyDownload, []string{j.Path, bestID, strconv.Itoa(g.ID)}, nil),
		})
	}
	return uris
}

func (b *FrontBuilder) galleyMIME(ctx context.Context, g model.Galley) string {
	if b.Files == nil || g.SubmissionFileID == 0 {
		return normalizeMIME(g.FileType)
	}
	file, err := b.Files.Get(ctx, g.SubmissionFileID)
	if err != nil {
		b.logger().Debug("galley file not found", "galley", g.ID, "submission_file", g.SubmissionFileID, "error", err)
		return normalizeMIME(g.FileType)
	}
	if b.FileService != nil {
		if mt, err := b.FileService.MIMEType(ctx, file.FileID); err == nil && mt != "" {
			return normalizeMIME(mt)
		}
	}
	if file.MIMEType != "" {
		return normalizeMIME(file.MIMEType)
	}
	return normalizeMIME(g.FileType)
}

// buildAbstracts renders abstracts and plain-language summaries. The
// submission locale gives abstract elements, other locales trans-abstract.
func buildAbstracts(pub *model.Publication, locale string) (abstracts, trans []XMLAbstract) {
	add := func(loc, abstractType, html string) {
		content := markup.Blocks(html)
		if content == "" {
			return
		}
		a := XMLAbstract{AbstractType: abstractType, Lang: helpers.XMLLang(loc), Content: content}
		if loc == locale {
			abstracts = append(abstracts, a)
		} else {
			trans = append(trans, a)
		}
	}

	for _, loc := range unionLocales(pub.Abstract, pub.PlainLanguageSummary) {
		add(loc, "", pub.Abstract[loc])
		add(loc, "plain-language-summary", pub.PlainLanguageSummary[loc])
	}
	return abstracts, trans
}

// unionLocales returns the locales of all values, sorted, without duplicates.
func unionLocales(values ...model.Localized) []string {
	merged := model.Localized{}
	for _, v := range values {
		for loc, s := range v {
			if s != "" {
				merged[loc] = s
			}
		}
	}
	return merged.Locales()
}

// buildKeywords renders one kwd-group per locale, limited to the journal's
// supported locales when it lists any.
func (b *FrontBuilder) buildKeywords(pub *model.Publication, supported []string) []XMLKwdGroup {
	allowed := make(map[string]bool, len(supported))
	for _, loc := range supported {
		allowed[loc] = true
	}

	var groups []XMLKwdGroup
	for _, loc := range pub.Keywords.Locales() {
		if len(allowed) > 0 && !allowed[loc] {
			continue
		}
		var kwds []string
		for _, k := range pub.Keywords[loc] {
			if k = strings.TrimSpace(k); k != "" {
				kwds = append(kwds, k)
			}
		}
		if len(kwds) == 0 {
			continue
		}
		groups = append(groups, XMLKwdGroup{
			Lang:  helpers.XMLLang(loc),
			Title: b.messages().Translate(loc, mapping.KeyKeywords, nil),
			Kwds:  kwds,
		})
	}
	return groups
}

// buildCustomMeta links each production-ready file to the download
// endpoint and adds the issue cover. It returns nil when there is nothing
// to link.
func (b *FrontBuilder) buildCustomMeta(ctx context.Context, j *model.Journal, sub *model.Submission, issue *model.Issue) (*XMLCustomMetaGroup, error) {
	var metas []XMLCustomMeta

	if b.Files != nil && b.URLs != nil {
		files, err := b.Files.ProductionReady(ctx, sub.ID)
		if err != nil && !errors.Is(err, host.ErrNotFound) {
			return nil, fmt.Errorf("listing production-ready files: %w", err)
		}
		for _, f := range files {
			query := url.Values{}
			query.Set("submissionId", strconv.Itoa(sub.ID))
			query.Set("submissionFileId", strconv.Itoa(f.ID))
			query.Set("fileId", strconv.Itoa(f.FileID))
			query.Set("stageId", strconv.Itoa(host.StageProduction))
			metas = append(metas, XMLCustomMeta{
				MetaName: MetaProductionReadyFile,
				MetaValue: XMLMetaValue{ExtLink: &XMLExtLink{
					Type: "uri",
					Href: b.URLs.URL(host.RoutePluginDownload, []string{j.Path}, query),
				}},
			})
		}
	}

	if issue != nil {
		if cover := strings.TrimSpace(issue.CoverImageURL); cover != "" {
			metas = append(metas, XMLCustomMeta{
				MetaName:  MetaIssueCover,
				MetaValue: XMLMetaValue{InlineGraphic: &XMLInlineGraphic{Href: cover}},
			})
		}
	}

	if len(metas) == 0 {
		return nil, nil
	}
	return &XMLCustomMetaGroup{CustomMetas: metas}, nil
}

func (b *FrontBuilder) messages() *mapping.Catalog {
	if b.Messages == nil {
		b.Messages = mapping.MustCatalog()
	}
	return b.Messages
}

func (b *FrontBuilder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}
