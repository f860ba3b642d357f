package jats

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/jatstemplate/helpers"
	"github.com/lehigh-university-libraries/jatstemplate/model"
)

// BuildBack renders citations as a reference list with ids R1..Rn in the
// given order. It returns nil when there are no citations, so the article
// has no back element.
func BuildBack(citations []model.Citation) *XMLBack {
	if len(citations) == 0 {
		return nil
	}

	refs := make([]XMLRef, 0, len(citations))
	for i, c := range citations {
		ref := XMLRef{ID: fmt.Sprintf("R%d", i+1)}
		if c.Structured() {
			ref.ElementCitation = buildElementCitation(c)
		} else {
			ref.MixedCitation = &XMLMixedCitation{Value: c.Raw}
		}
		refs = append(refs, ref)
	}

	return &XMLBack{RefList: &XMLRefList{Refs: refs}}
}

func buildElementCitation(c model.Citation) *XMLElementCitation {
	ec := &XMLElementCitation{
		PublicationType: publicationType(c.Type, c.SourceType),
		Year:            helpers.ExtractYear(c.Date),
		FPage:           strings.TrimSpace(c.FirstPage),
		LPage:           strings.TrimSpace(c.LastPage),
		Issue:           strings.TrimSpace(c.Issue),
		Volume:          strings.TrimSpace(c.Volume),
	}

	if names := citationNames(c.Authors); len(names) > 0 {
		ec.PersonGroups = []XMLPersonGroup{{Type: "author", Names: names}}
	}

	title := strings.TrimSpace(c.Title)
	source := strings.TrimSpace(c.SourceName)
	switch citationTitleKind(c.Type) {
	case titlePart:
		ec.PartTitle, ec.Source = title, source
	case titleData:
		ec.DataTitle, ec.Source = title, source
	case titleArticle:
		ec.ArticleTitle, ec.Source = title, source
	case titleIssue:
		ec.IssueTitle, ec.Source = title, source
	default:
		ec.Source = title
		if ec.Source == "" {
			ec.Source = source
		}
	}

	for _, id := range []struct {
		pubIDType string
		idType    helpers.IdentifierType
		value     string
	}{
		{"doi", helpers.IdentifierDOI, c.DOI},
		{"handle", helpers.IdentifierHandle, c.Handle},
		{"arxiv", helpers.IdentifierArxiv, c.Arxiv},
		{"urn", helpers.IdentifierURN, c.URN},
	} {
		if v := helpers.NormalizeIdentifier(id.idType, id.value); v != "" {
			ec.PubIDs = append(ec.PubIDs, XMLPubID{Type: id.pubIDType, Value: v})
		}
	}

	if u := strings.TrimSpace(c.URL); u != "" {
		ec.ExtLinks = []XMLExtLink{{Type: "uri", Href: u, Value: u}}
	}

	return ec
}

// citationNames parses author name strings. Names that cannot be parsed
// are dropped.
func citationNames(authors []string) []XMLPersonName {
	var names []XMLPersonName
	for _, a := range authors {
		parsed, ok := helpers.ParseName(a)
		if !ok {
			continue
		}
		names = append(names, XMLPersonName{
			Surname:    parsed.Family,
			GivenNames: parsed.GivenNames(),
			Suffix:     parsed.Suffix,
		})
	}
	return names
}
