package jats

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/model"
	"github.com/lehigh-university-libraries/jatstemplate/textparser"
)

// contentModels lists, per composite element, the JATS 1.2 child sequence
// as ranks: a child's rank may never be lower than the rank of the child
// before it. Children in the same group may interleave.
var contentModels = map[string][][]string{
	"article": {{"front"}, {"body"}, {"back"}},
	"front":   {{"journal-meta"}, {"article-meta"}},
	"journal-meta": {
		{"journal-id"}, {"journal-title-group"}, {"contrib-group", "aff"},
		{"issn"}, {"issn-l"}, {"isbn"}, {"publisher"}, {"notes"}, {"self-uri"}, {"custom-meta-group"},
	},
	"journal-title-group": {{"journal-title"}, {"journal-subtitle"}, {"trans-title-group"}, {"abbrev-journal-title"}},
	"article-meta": {
		{"article-id"}, {"article-categories"}, {"title-group"}, {"contrib-group", "aff"},
		{"author-notes"}, {"pub-date"}, {"volume"}, {"volume-id"}, {"issue"}, {"issue-id"},
		{"issue-title"}, {"fpage"}, {"lpage"}, {"page-range"}, {"history"}, {"pub-history"},
		{"permissions"}, {"self-uri"}, {"abstract"}, {"trans-abstract"}, {"kwd-group"},
		{"funding-group"}, {"conference"}, {"counts"}, {"custom-meta-group"},
	},
	"title-group":       {{"article-title"}, {"subtitle"}, {"trans-title-group"}, {"alt-title"}},
	"trans-title-group": {{"trans-title"}, {"trans-subtitle"}},
	"contrib": {
		{"contrib-id"}, {"name", "name-alternatives", "string-name", "collab"},
		{"degrees", "role", "email", "xref", "uri", "bio", "address", "aff", "ext-link"},
	},
	"name-alternatives": {{"string-name", "name"}},
	"name":              {{"surname", "given-names"}, {"prefix"}, {"suffix"}},
	"permissions":       {{"copyright-statement"}, {"copyright-year"}, {"copyright-holder"}, {"license"}},
	"license":           {{"license-p"}},
	"pub-date":          {{"day"}, {"month"}, {"season"}, {"year"}},
	"date":              {{"day"}, {"month"}, {"season"}, {"year"}},
	"publisher":         {{"publisher-name"}, {"publisher-loc"}},
	"kwd-group":         {{"label"}, {"title"}, {"kwd"}},
	"institution-wrap":  {{"institution-id", "institution"}},
	"custom-meta":       {{"meta-name"}, {"meta-value"}},
	"ref":               {{"label"}, {"mixed-citation", "element-citation"}},
	"element-citation": {
		{"person-group"}, {"year"}, {"article-title", "part-title", "data-title", "issue-title"}, {"source"},
		{"pub-id"}, {"ext-link"}, {"fpage"}, {"lpage"}, {"issue"}, {"volume"},
	},
}

// checkContentModels walks the tree and reports children out of order or
// not allowed in their parent.
func checkContentModels(t *testing.T, e *etree.Element) {
	t.Helper()
	if groups, ok := contentModels[e.Tag]; ok {
		rank := make(map[string]int)
		for i, g := range groups {
			for _, tag := range g {
				rank[tag] = i
			}
		}
		last := -1
		for _, c := range e.ChildElements() {
			r, ok := rank[c.Tag]
			if !ok {
				t.Errorf("%s: unexpected child %s", e.GetPath(), c.Tag)
				continue
			}
			if r < last {
				t.Errorf("%s: child %s out of order (%v)", e.GetPath(), c.Tag, childTags(e))
			}
			last = r
		}
	}
	for _, c := range e.ChildElements() {
		checkContentModels(t, c)
	}
}

func parseDoc(t *testing.T, out []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(out); err != nil {
		t.Fatalf("output is not well-formed XML: %v\n%s", err, out)
	}
	return doc
}

func fullGenerator() (*Generator, *fakeFiles) {
	files := fullFiles()
	reg := textparser.NewRegistry()
	reg.Register(&fakeParser{text: "pdf text"})
	return &Generator{
		Files:       files,
		FileService: files,
		URLs:        fakeURLs{},
		Parsers:     reg,
	}, files
}

func TestGenerate_MinimalRecord(t *testing.T) {
	out, err := (&Generator{}).Generate(context.Background(), minimalRecord())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !bytes.HasPrefix(out, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)) {
		t.Errorf("missing XML declaration: %.60s", out)
	}
	if !bytes.Contains(out, []byte(Doctype)) {
		t.Error("missing JATS 1.2 DOCTYPE")
	}

	root := parseDoc(t, out).Root()
	if root.Tag != "article" {
		t.Fatalf("root = %s, want article", root.Tag)
	}
	attrs := map[string]string{
		"xmlns:xlink": NamespaceXLink,
		"xmlns:mml":   NamespaceMML,
		"xmlns:xsi":   NamespaceXSI,
		"xml:lang":    "en",
		"dtd-version": "1.2",
	}
	for key, want := range attrs {
		if got := root.SelectAttrValue(key, ""); got != want {
			t.Errorf("article @%s = %q, want %q", key, got, want)
		}
	}
	if root.SelectAttr("article-type") != nil {
		t.Error("article-type should be absent without an identify type")
	}

	if got := childTags(root); !equalStrings(got, []string{"front"}) {
		t.Fatalf("article children = %v, want [front]", got)
	}
	for _, path := range []string{"./front/journal-meta", "./front/article-meta"} {
		el := root.FindElement(path)
		if el == nil || len(el.ChildElements()) == 0 {
			t.Errorf("%s is missing or empty", path)
		}
	}
	if root.FindElement(".//custom-meta-group") != nil {
		t.Error("custom-meta-group should be omitted when empty")
	}
	checkContentModels(t, root)
}

func TestGenerate_FullRecord(t *testing.T) {
	g, _ := fullGenerator()
	out, err := g.Generate(context.Background(), fullRecord())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	root := parseDoc(t, out).Root()
	checkContentModels(t, root)

	if got := root.SelectAttrValue("article-type", ""); got != "research-article" {
		t.Errorf("article-type = %q, want research-article", got)
	}
	if got := childTags(root); !equalStrings(got, []string{"front", "body", "back"}) {
		t.Errorf("article children = %v", got)
	}

	tests := []struct {
		path string
		want string
	}{
		{"./front/journal-meta/journal-id[@journal-id-type='ojs']", "jtest"},
		{"./front/journal-meta/journal-title-group/journal-title", "Journal of Tests"},
		{"./front/journal-meta/journal-title-group/trans-title-group[@xml:lang='fr']/trans-title", "Revue des tests"},
		{"./front/journal-meta/issn[@pub-type='epub']", "1234-5678"},
		{"./front/journal-meta/issn[@pub-type='ppub']", "8765-4321"},
		{"./front/journal-meta/publisher/publisher-name", "Test University Press"},
		{"./front/journal-meta/publisher/publisher-loc/country", "US"},
		{"./front/article-meta/article-id[@pub-id-type='publisher-id']", "42"},
		{"./front/article-meta/article-id[@pub-id-type='doi']", "10.1234/jt.42"},
		{"./front/article-meta/article-categories/subj-group[@subj-group-type='heading']/subject", "Research Articles"},
		{"./front/article-meta/title-group/trans-title-group[@xml:lang='fr']/trans-subtitle", "Une étude"},
		{"./front/article-meta/pub-date/day", "03"},
		{"./front/article-meta/pub-date/month", "05"},
		{"./front/article-meta/pub-date/year", "2024"},
		{"./front/article-meta/volume[@seq='2']", "12"},
		{"./front/article-meta/issue", "3"},
		{"./front/article-meta/issue-id[@pub-id-type='ojs']", "9"},
		{"./front/article-meta/issue-title", "Special Issue"},
		{"./front/article-meta/fpage", "10"},
		{"./front/article-meta/lpage", "19"},
		{"./front/article-meta/pub-history/event[@event-type='received']/date[@date-type='received']/month", "11"},
		{"./front/article-meta/permissions/copyright-statement", "Copyright (c) 2024 The Authors"},
		{"./front/article-meta/permissions/license/license-p", "This work is licensed under a Creative Commons Attribution 4.0 International License."},
		{"./front/article-meta/kwd-group[@xml:lang='fr']/title", "Mots-clés"},
		{"./front/article-meta/custom-meta-group/custom-meta[1]/meta-name", MetaProductionReadyFile},
		{"./front/article-meta/custom-meta-group/custom-meta[2]/meta-name", MetaIssueCover},
		{"./back/ref-list/ref[@id='R1']/mixed-citation", "Smith, J. (2020). A & B. Journal."},
	}
	for _, tt := range tests {
		el := root.FindElement(tt.path)
		if el == nil {
			t.Errorf("missing %s", tt.path)
			continue
		}
		if got := el.Text(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.path, got, tt.want)
		}
	}

	title := root.FindElement("./front/article-meta/title-group/article-title")
	if title == nil || title.SelectElement("bold") == nil || title.SelectElement("bold").Text() != "Bold" {
		t.Error("article-title should carry the bold element")
	}
	if n := len(root.FindElements("./front/article-meta/title-group/trans-title-group")); n != 1 {
		t.Errorf("got %d trans-title-groups, want 1 (blank translation skipped)", n)
	}

	editors := root.FindElements("./front/journal-meta/contrib-group/contrib")
	if len(editors) != 2 {
		t.Fatalf("got %d editors, want 2", len(editors))
	}
	if got := editors[1].SelectAttrValue("contrib-type", ""); got != "secteditor" {
		t.Errorf("second editor contrib-type = %q, want secteditor", got)
	}

	authors := root.FindElements("./front/article-meta/contrib-group[@content-type='author']/contrib")
	if len(authors) != 2 {
		t.Fatalf("got %d authors, want 2", len(authors))
	}
	if authors[0].SelectAttr("corresp") != nil || authors[1].SelectAttrValue("corresp", "") != "yes" {
		t.Error("only the primary contact should be corresp")
	}
	orcid := authors[0].SelectElement("contrib-id")
	if orcid == nil || orcid.Text() != "https://orcid.org/0000-0002-1825-0097" || orcid.SelectAttrValue("authenticated", "") != "true" {
		t.Errorf("contrib-id = %v", orcid)
	}
	role := authors[0].SelectElement("role")
	if role == nil {
		t.Fatal("missing role")
	}
	if n := len(authors[0].SelectElements("role")); n != 1 {
		t.Errorf("got %d roles, want 1 (unknown role dropped)", n)
	}
	roleAttrs := map[string]string{
		"vocab":                 "credit",
		"vocab-identifier":      "https://credit.niso.org/",
		"vocab-term":            "Conceptualization",
		"vocab-term-identifier": "https://credit.niso.org/contributor-roles/conceptualization/",
		"specific-use":          "lead",
	}
	for key, want := range roleAttrs {
		if got := role.SelectAttrValue(key, ""); got != want {
			t.Errorf("role @%s = %q, want %q", key, got, want)
		}
	}
	if got := authors[0].FindElement("./name-alternatives/string-name[@specific-use='display']"); got == nil || got.Text() != "Ada King" {
		t.Error("missing display string-name")
	}
	if bio := authors[0].SelectElement("bio"); bio == nil || bio.FindElement("./p/bold") == nil {
		t.Error("bio should contain a paragraph with bold")
	}

	var rids []string
	for _, a := range authors {
		for _, x := range a.SelectElements("xref") {
			rids = append(rids, x.SelectAttrValue("rid", ""))
		}
	}
	if got := strings.Join(rids, ","); got != "aff-1,aff-2,aff-1" {
		t.Errorf("xref rids = %s, want aff-1,aff-2,aff-1", got)
	}
	affs := root.FindElements("./front/article-meta/aff")
	if len(affs) != 2 {
		t.Fatalf("got %d affs, want 2", len(affs))
	}
	if id := affs[0].FindElement("./institution-wrap/institution-id[@institution-id-type='ror']"); id == nil || id.Text() != "https://ror.org/012afjb06" {
		t.Error("aff-1 should carry its ROR id")
	}
	if inst := affs[1].SelectElement("institution"); inst == nil || inst.Text() != "Cambridge University" {
		t.Error("aff-2 should be Cambridge University")
	}

	selfURIs := root.FindElements("./front/article-meta/self-uri")
	if len(selfURIs) != 3 {
		t.Fatalf("got %d self-uris, want 3", len(selfURIs))
	}
	if got := selfURIs[0].SelectAttrValue("xlink:href", ""); got != "https://journals.example.org/index.php/jtest/article/view/42" {
		t.Errorf("article self-uri = %q", got)
	}
	if got := selfURIs[1].SelectAttrValue("content-type", ""); got != "application/pdf" {
		t.Errorf("first galley content-type = %q, want application/pdf", got)
	}
	if got := selfURIs[2].SelectAttrValue("content-type", ""); got != "text/html" {
		t.Errorf("second galley content-type = %q, want text/html", got)
	}

	if n := len(root.FindElements("./front/article-meta/abstract")); n != 2 {
		t.Errorf("got %d abstracts, want 2", n)
	}
	if pls := root.FindElement("./front/article-meta/abstract[@abstract-type='plain-language-summary']/p"); pls == nil || pls.Text() != "Simply put." {
		t.Error("missing plain-language summary")
	}
	if root.FindElement("./front/article-meta/abstract/list[@list-type='bullet']/list-item/p") == nil {
		t.Error("abstract list should be kept")
	}
	if tr := root.FindElement("./front/article-meta/trans-abstract[@xml:lang='fr']/p"); tr == nil || tr.Text() != "Nous montrons." {
		t.Error("missing french trans-abstract")
	}

	kwdGroups := root.FindElements("./front/article-meta/kwd-group")
	if len(kwdGroups) != 2 {
		t.Fatalf("got %d kwd-groups, want 2 (unsupported locale skipped)", len(kwdGroups))
	}
	if n := len(kwdGroups[0].SelectElements("kwd")); n != 2 {
		t.Errorf("got %d english keywords, want 2", n)
	}

	if got := root.FindElement("./front/article-meta/counts/page-count").SelectAttrValue("count", ""); got != "10" {
		t.Errorf("page-count = %q, want 10", got)
	}

	link := root.FindElement("./front/article-meta/custom-meta-group/custom-meta/meta-value/ext-link")
	wantLink := "https://journals.example.org/index.php/jtest/jatsTemplate/download?fileId=21&stageId=5&submissionFileId=601&submissionId=42"
	if link == nil || link.SelectAttrValue("xlink:href", "") != wantLink {
		t.Errorf("production-ready link = %v, want %s", link, wantLink)
	}
	if cover := root.FindElement("./front/article-meta/custom-meta-group/custom-meta/meta-value/inline-graphic"); cover == nil {
		t.Error("missing issue cover")
	}

	if p := root.FindElement("./body/p"); p == nil || p.SelectElement("bold") == nil {
		t.Error("body should come from the HTML galley")
	}

	refs := root.FindElements("./back/ref-list/ref")
	if len(refs) != 3 {
		t.Fatalf("got %d refs, want 3", len(refs))
	}
	if ec := refs[2].SelectElement("element-citation"); ec == nil || ec.SelectElement("part-title") == nil {
		t.Error("book-chapter citation should use part-title")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g, _ := fullGenerator()
	first, err := g.Generate(context.Background(), fullRecord())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		g, _ := fullGenerator()
		again, err := g.Generate(context.Background(), fullRecord())
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("repeated runs produced different output")
		}
	}
}

func TestGenerate_Pretty(t *testing.T) {
	g := &Generator{Options: SerializeOptions{Pretty: true}}
	out, err := g.Generate(context.Background(), minimalRecord())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !bytes.Contains(out, []byte("\n  <front>")) {
		t.Errorf("expected indented output, got:\n%s", out)
	}
}

func TestGenerate_IncompleteRecord(t *testing.T) {
	tests := map[string]*model.Record{
		"nil record":     nil,
		"no journal":     {Submission: minimalRecord().Submission},
		"no submission":  {Journal: minimalRecord().Journal},
		"no publication": {Journal: minimalRecord().Journal, Submission: &model.Submission{ID: 1}},
	}
	for name, rec := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := (&Generator{}).Generate(context.Background(), rec)
			if !errors.Is(err, ErrIncompleteRecord) {
				t.Errorf("Generate() error = %v, want ErrIncompleteRecord", err)
			}
		})
	}
}

func TestGenerate_Hooks(t *testing.T) {
	var calls []string
	g := &Generator{}
	g.AddHook(func(_ context.Context, a *XMLArticle) error {
		calls = append(calls, "first")
		a.ArticleType = "editorial"
		return nil
	})
	g.AddHook(func(_ context.Context, a *XMLArticle) error {
		calls = append(calls, "second:"+a.ArticleType)
		return nil
	})

	out, err := g.Generate(context.Background(), minimalRecord())
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got := strings.Join(calls, ","); got != "first,second:editorial" {
		t.Errorf("hook calls = %s", got)
	}
	if got := parseDoc(t, out).Root().SelectAttrValue("article-type", ""); got != "editorial" {
		t.Errorf("article-type = %q, want editorial", got)
	}
}

func TestGenerate_HookError(t *testing.T) {
	g := &Generator{}
	g.AddHook(func(context.Context, *XMLArticle) error { return errBoom })

	if _, err := g.Generate(context.Background(), minimalRecord()); !errors.Is(err, errBoom) {
		t.Errorf("Generate() error = %v, want errBoom", err)
	}
}

func TestGenerate_CitationStore(t *testing.T) {
	tests := []struct {
		name     string
		store    fakeCitations
		wantRefs int
		wantErr  bool
	}{
		{"store supplies citations", fakeCitations{citations: []model.Citation{{Raw: "a"}, {Raw: "b"}}}, 2, false},
		{"not found means none", fakeCitations{err: host.ErrNotFound}, 0, false},
		{"store failure", fakeCitations{err: errBoom}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article, err := (&Generator{Citations: tt.store}).Build(context.Background(), minimalRecord())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			got := 0
			if article.Back != nil {
				got = len(article.Back.RefList.Refs)
			}
			if got != tt.wantRefs {
				t.Errorf("got %d refs, want %d", got, tt.wantRefs)
			}
		})
	}
}

func TestAssemble_EmptyParts(t *testing.T) {
	front := &XMLFront{JournalMeta: &XMLJournalMeta{}, ArticleMeta: &XMLArticleMeta{}}
	a := Assemble(front, &XMLBody{Content: "  "}, &XMLBack{RefList: &XMLRefList{}}, "fr_CA")
	if a.Body != nil {
		t.Error("blank body should be omitted")
	}
	if a.Back != nil {
		t.Error("back without refs should be omitted")
	}
	if a.Lang != "fr" {
		t.Errorf("Lang = %q, want fr", a.Lang)
	}
}

func TestArticleType(t *testing.T) {
	tests := map[string]string{
		"Research Article":   "research-article",
		"  Book Review  ":    "book-review",
		"<b>Editorial</b>":   "editorial",
		"Case Report (Rare)": "case-report-rare",
		"":                   "",
	}
	for in, want := range tests {
		if got := articleType(in); got != want {
			t.Errorf("articleType(%q) = %q, want %q", in, got, want)
		}
	}
}
