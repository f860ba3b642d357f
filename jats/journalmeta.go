package jats

import (
	"strings"

	"github.com/lehigh-university-libraries/jatstemplate/helpers"
	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/markup"
	"github.com/lehigh-university-libraries/jatstemplate/model"
)

var editorContribTypes = map[string]bool{
	model.EditorJournalManager: true,
	model.EditorEditor:         true,
	model.EditorSectionEditor:  true,
}

func (b *FrontBuilder) buildJournalMeta(j *model.Journal) *XMLJournalMeta {
	meta := &XMLJournalMeta{
		JournalIDs: []XMLJournalID{
			{Type: "ojs", Value: j.Path},
			{Type: "publisher", Value: j.Path},
		},
		TitleGroup: buildJournalTitleGroup(j),
	}

	if group := buildEditorGroup(j.Editors); group != nil {
		meta.ContribGroups = append(meta.ContribGroups, group)
	}

	if issn := strings.TrimSpace(j.OnlineISSN); issn != "" {
		meta.ISSNs = append(meta.ISSNs, XMLISSN{PubType: "epub", Value: issn})
	}
	if issn := strings.TrimSpace(j.PrintISSN); issn != "" {
		meta.ISSNs = append(meta.ISSNs, XMLISSN{PubType: "ppub", Value: issn})
	}

	meta.Publisher = buildPublisher(j)

	if b.URLs != nil {
		meta.SelfURIs = []XMLSelfURI{{Href: b.URLs.URL(host.RouteJournal, []string{j.Path}, nil)}}
	}

	return meta
}

func buildJournalTitleGroup(j *model.Journal) *XMLJournalTitleGroup {
	group := &XMLJournalTitleGroup{}

	titleLocale, title := j.Name.PreferLocale(j.PrimaryLocale)
	if title != "" {
		group.JournalTitles = []XMLLangText{{Lang: helpers.XMLLang(titleLocale), Value: title}}
	}
	for _, loc := range j.Name.Locales() {
		if loc == titleLocale || strings.TrimSpace(j.Name[loc]) == "" {
			continue
		}
		group.TransTitleGroups = append(group.TransTitleGroups, XMLTransTitleGroup{
			Lang:       helpers.XMLLang(loc),
			TransTitle: &XMLInline{Content: markup.Escape(j.Name[loc])},
		})
	}
	for _, loc := range j.Abbreviation.Locales() {
		group.AbbrevTitles = append(group.AbbrevTitles, XMLLangText{
			Lang:  helpers.XMLLang(loc),
			Value: j.Abbreviation[loc],
		})
	}

	if len(group.JournalTitles) == 0 && len(group.TransTitleGroups) == 0 && len(group.AbbrevTitles) == 0 {
		return nil
	}
	return group
}

// buildEditorGroup lists the editorial team. Editors with a role outside
// jmanager, editor and secteditor are left out.
func buildEditorGroup(editors []model.Editor) *XMLContribGroup {
	var contribs []XMLContrib
	for _, e := range editors {
		if !editorContribTypes[e.Role] {
			continue
		}
		name := personName(e.GivenName, e.FamilyName)
		if name == nil {
			continue
		}
		contribs = append(contribs, XMLContrib{
			ContribType: e.Role,
			Name:        name,
			Email:       strings.TrimSpace(e.Email),
		})
	}
	if len(contribs) == 0 {
		return nil
	}
	return &XMLContribGroup{Contribs: contribs}
}

// buildPublisher returns nil without a publisher name, which the
// publisher element requires.
func buildPublisher(j *model.Journal) *XMLPublisher {
	name := strings.TrimSpace(j.PublisherInstitution)
	if name == "" {
		return nil
	}

	p := &XMLPublisher{Name: name}
	loc := &XMLPublisherLoc{
		Text:    strings.TrimSpace(j.PublisherLocation),
		Country: strings.TrimSpace(j.Country),
		URI:     strings.TrimSpace(j.PublisherURL),
	}
	if loc.Text != "" || loc.Country != "" || loc.URI != "" {
		p.Loc = loc
	}
	return p
}

// personName returns a structured name, or nil when both parts are empty.
func personName(given, family string) *XMLPersonName {
	given, family = strings.TrimSpace(given), strings.TrimSpace(family)
	if given == "" && family == "" {
		return nil
	}
	return &XMLPersonName{Surname: family, GivenNames: given}
}
