package jats

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/model"
)

// fakeFiles serves submission files and their content from memory.
type fakeFiles struct {
	files   map[int]model.SubmissionFile // by submission file id
	content map[int]string               // by file id
	mime    map[int]string               // by file id
	ready   []model.SubmissionFile
	opened  []int
	closed  int
}

func (f *fakeFiles) ProductionReady(_ context.Context, submissionID int) ([]model.SubmissionFile, error) {
	var out []model.SubmissionFile
	for _, sf := range f.ready {
		if sf.SubmissionID == submissionID {
			out = append(out, sf)
		}
	}
	return out, nil
}

func (f *fakeFiles) Get(_ context.Context, id int) (*model.SubmissionFile, error) {
	sf, ok := f.files[id]
	if !ok {
		return nil, host.ErrNotFound
	}
	return &sf, nil
}

func (f *fakeFiles) Open(_ context.Context, fileID int) (io.ReadCloser, error) {
	content, ok := f.content[fileID]
	if !ok {
		return nil, host.ErrNotFound
	}
	f.opened = append(f.opened, fileID)
	return &trackedReader{Reader: strings.NewReader(content), onClose: func() { f.closed++ }}, nil
}

func (f *fakeFiles) MIMEType(_ context.Context, fileID int) (string, error) {
	mt, ok := f.mime[fileID]
	if !ok {
		return "", host.ErrNotFound
	}
	return mt, nil
}

type trackedReader struct {
	io.Reader
	onClose func()
}

func (r *trackedReader) Close() error {
	r.onClose()
	return nil
}

// fakeParser returns fixed text and counts closes.
type fakeParser struct {
	text   string
	err    error
	closed int
}

func (p *fakeParser) Name() string        { return "fake" }
func (p *fakeParser) Description() string { return "fake parser" }
func (p *fakeParser) MIMETypes() []string { return []string{"application/pdf", "text/plain"} }

func (p *fakeParser) Parse(_ context.Context, r io.Reader) (io.ReadCloser, error) {
	if p.err != nil {
		return nil, p.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	return &trackedReader{Reader: strings.NewReader(p.text), onClose: func() { p.closed++ }}, nil
}

type fakeURLs struct{}

func (fakeURLs) URL(route host.Route, path []string, query url.Values) string {
	base := "https://journals.example.org/index.php/" + path[0]
	switch route {
	case host.RouteArticleView:
		return base + "/article/view/" + path[1]
	case host.RouteGalleyDownload:
		return base + "/article/download/" + path[1] + "/" + path[2]
	case host.RoutePluginDownload:
		return base + "/jatsTemplate/download?" + query.Encode()
	default:
		return base
	}
}

type fakeCitations struct {
	citations []model.Citation
	err       error
}

func (f fakeCitations) CitationsForPublication(context.Context, int) ([]model.Citation, error) {
	return f.citations, f.err
}

var errBoom = errors.New("boom")

func minimalRecord() *model.Record {
	return &model.Record{
		Journal: &model.Journal{
			ID:            1,
			Path:          "jtest",
			PrimaryLocale: "en",
			Name:          model.Localized{"en": "Journal of Tests"},
		},
		Section: &model.Section{ID: 1, Title: model.Localized{"en": "Articles"}},
		Submission: &model.Submission{
			ID:     42,
			Locale: "en_US",
			Publication: &model.Publication{
				ID:    7,
				Title: model.Localized{"en_US": "A Minimal Article"},
				Authors: []model.Author{{
					ID:         1,
					GivenName:  model.Localized{"en_US": "Ada"},
					FamilyName: model.Localized{"en_US": "Lovelace"},
					Email:      "ada@example.org",
				}},
			},
		},
	}
}

func fullRecord() *model.Record {
	return &model.Record{
		Journal: &model.Journal{
			ID:                   1,
			Path:                 "jtest",
			PrimaryLocale:        "en_US",
			SupportedLocales:     []string{"en_US", "fr_CA"},
			Name:                 model.Localized{"en_US": "Journal of Tests", "fr_CA": "Revue des tests"},
			Abbreviation:         model.Localized{"en_US": "J. Tests"},
			OnlineISSN:           "1234-5678",
			PrintISSN:            "8765-4321",
			PublisherInstitution: "Test University Press",
			PublisherLocation:    "Bethlehem, PA",
			Country:              "US",
			PublisherURL:         "https://press.example.org",
			Editors: []model.Editor{
				{Role: model.EditorJournalManager, GivenName: "Grace", FamilyName: "Hopper", Email: "grace@example.org"},
				{Role: model.EditorSectionEditor, GivenName: "Alan", FamilyName: "Turing"},
				{Role: "reviewer", GivenName: "Not", FamilyName: "Listed"},
			},
		},
		Section: &model.Section{
			ID:           3,
			Title:        model.Localized{"en_US": "Research Articles"},
			IdentifyType: model.Localized{"en_US": "Research Article"},
		},
		Issue: &model.Issue{
			ID:            9,
			Volume:        "12",
			Number:        "3",
			Year:          "2024",
			ShowVolume:    true,
			ShowNumber:    true,
			ShowYear:      true,
			ShowTitle:     true,
			Title:         model.Localized{"en_US": "Special <i>Issue</i>"},
			DatePublished: "2024-05-01",
			CoverImageURL: "https://journals.example.org/public/cover.png",
		},
		Submission: &model.Submission{
			ID:            42,
			Locale:        "en_US",
			DateSubmitted: "2023-11-02 10:15:00",
			Galleys: []model.Galley{
				{ID: 100, Label: "PDF", FileType: "application/pdf", SubmissionFileID: 501},
				{ID: 101, Label: "HTML", FileType: "text/html", SubmissionFileID: 502},
			},
			Publication: &model.Publication{
				ID:                   7,
				Title:                model.Localized{"en_US": "On <b>Bold</b> Results & More", "fr_CA": "Sur les résultats", "de_DE": "<i></i>"},
				Subtitle:             model.Localized{"en_US": "A Study", "fr_CA": "Une étude"},
				Abstract:             model.Localized{"en_US": "<p>We show <em>things</em>.</p><ul><li>one</li></ul>", "fr_CA": "Nous montrons."},
				PlainLanguageSummary: model.Localized{"en_US": "<p>Simply put.</p>"},
				PrimaryContactID:     2,
				Authors: []model.Author{
					{
						ID:                  1,
						GivenName:           model.Localized{"en_US": "Ada"},
						FamilyName:          model.Localized{"en_US": "Lovelace"},
						PreferredPublicName: model.Localized{"en_US": "Ada King"},
						Email:               "ada@example.org",
						URL:                 "https://ada.example.org",
						ORCID:               "0000-0002-1825-0097",
						ORCIDVerified:       true,
						Affiliations: []model.Affiliation{
							{Name: model.Localized{"en_US": "Lehigh University"}, ROR: "012afjb06"},
						},
						CreditRoles: []model.CreditRole{
							{Role: "conceptualization", Degree: "lead"},
							{Role: "not-a-role"},
						},
						Biography: model.Localized{"en_US": "<p>Born in <b>London</b>.</p>", "fr_CA": ""},
					},
					{
						ID:         2,
						GivenName:  model.Localized{"en_US": "Charles"},
						FamilyName: model.Localized{"en_US": "Babbage"},
						Email:      "charles@example.org",
						Affiliations: []model.Affiliation{
							{Name: model.Localized{"en_US": "Cambridge University"}},
							{Name: model.Localized{"en_US": "Lehigh University"}},
						},
					},
				},
				Keywords:        model.LocalizedList{"en_US": {"testing", " ", "jats"}, "fr_CA": {"essai"}, "de_DE": {"ignored"}},
				Pages:           "pp. 10-19",
				CopyrightYear:   "2024",
				CopyrightHolder: model.Localized{"en_US": "The Authors"},
				LicenseURL:      "https://creativecommons.org/licenses/by/4.0/",
				DOI:             "https://doi.org/10.1234/jt.42",
				DatePublished:   "2024-05-03",
				Seq:             1,
				Citations: []model.Citation{
					{Raw: "Smith, J. (2020). A & B. Journal."},
					{
						Type:       "journal-article",
						Authors:    []string{"Doe, Jane", "John Q. Public"},
						Date:       "2019-04",
						Title:      "Structured Things",
						SourceName: "Journal of Structure",
						FirstPage:  "1",
						LastPage:   "9",
						Volume:     "4",
						Issue:      "2",
						DOI:        "doi:10.5555/struct",
						URL:        "https://example.org/struct",
					},
					{Type: "book-chapter", Title: "A Chapter", SourceName: "The Book"},
				},
			},
		},
	}
}

func fullFiles() *fakeFiles {
	return &fakeFiles{
		files: map[int]model.SubmissionFile{
			501: {ID: 501, FileID: 11, SubmissionID: 42, Path: "a.pdf"},
			502: {ID: 502, FileID: 12, SubmissionID: 42, Path: "a.html"},
		},
		content: map[int]string{
			11: "%PDF-1.4",
			12: "<html><body><p>Full <strong>text</strong>.</p></body></html>",
		},
		mime: map[int]string{11: "application/pdf", 12: "text/html; charset=utf-8"},
		ready: []model.SubmissionFile{
			{ID: 601, FileID: 21, SubmissionID: 42, FileStage: model.FileStageProductionReady, Path: "layout.docx"},
		},
	}
}
