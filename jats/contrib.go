package jats

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/jatstemplate/helpers"
	"github.com/lehigh-university-libraries/jatstemplate/markup"
	"github.com/lehigh-university-libraries/jatstemplate/model"
)

// affiliationIndex assigns aff-N tokens to distinct affiliation names in
// first-seen order.
type affiliationIndex struct {
	tokens map[string]string
	affs   []XMLAff
}

func newAffiliationIndex() *affiliationIndex {
	return &affiliationIndex{tokens: make(map[string]string)}
}

// token returns the token for an affiliation name, adding it on first
// use. The ROR id of the first occurrence is kept.
func (x *affiliationIndex) token(name, ror string) string {
	if tok, ok := x.tokens[name]; ok {
		return tok
	}

	tok := fmt.Sprintf("aff-%d", len(x.affs)+1)
	x.tokens[name] = tok

	institution := &XMLInstitution{ContentType: "orgname", Content: markup.InlineFragment(name)}
	aff := XMLAff{ID: tok}
	if helpers.IsROR(ror) {
		aff.InstitutionWrap = &XMLInstitutionWrap{
			InstitutionIDs: []XMLInstitutionID{{Type: "ror", Value: helpers.IdentifierURI(helpers.IdentifierROR, ror)}},
			Institution:    institution,
		}
	} else {
		aff.Institution = institution
	}
	x.affs = append(x.affs, aff)
	return tok
}

// buildContribGroup renders the authors of a publication and the
// affiliations they reference. locales lists the preferred locales for
// localized author data, most preferred first.
func buildContribGroup(pub *model.Publication, locales []string) (*XMLContribGroup, []XMLAff) {
	if len(pub.Authors) == 0 {
		return nil, nil
	}

	index := newAffiliationIndex()
	group := &XMLContribGroup{ContentType: "author"}
	for _, a := range pub.Authors {
		group.Contribs = append(group.Contribs, buildAuthor(a, pub.PrimaryContactID, locales, index))
	}
	return group, index.affs
}

func buildAuthor(a model.Author, primaryContactID int, locales []string, index *affiliationIndex) XMLContrib {
	c := XMLContrib{}
	if a.ID != 0 && a.ID == primaryContactID {
		c.Corresp = "yes"
	}

	if helpers.IsORCID(a.ORCID) {
		c.ContribIDs = []XMLContribID{{
			Type:          "orcid",
			Authenticated: fmt.Sprint(a.ORCIDVerified),
			Value:         helpers.IdentifierURI(helpers.IdentifierORCID, a.ORCID),
		}}
	}

	c.NameAlternatives = buildNameAlternatives(a, locales)

	for _, role := range a.CreditRoles {
		if r, ok := buildCreditRole(role); ok {
			c.Roles = append(c.Roles, r)
		}
	}

	c.Email = strings.TrimSpace(a.Email)

	seen := make(map[string]bool)
	for _, aff := range a.Affiliations {
		name := strings.TrimSpace(aff.Name.Prefer(locales...))
		if name == "" {
			continue
		}
		tok := index.token(name, aff.ROR)
		if seen[tok] {
			continue
		}
		seen[tok] = true
		c.Xrefs = append(c.Xrefs, XMLXref{RefType: "aff", RID: tok})
	}

	c.URI = strings.TrimSpace(a.URL)

	for _, loc := range a.Biography.Locales() {
		content := markup.Blocks(a.Biography[loc])
		if content == "" {
			continue
		}
		c.Bios = append(c.Bios, XMLBlock{Lang: helpers.XMLLang(loc), Content: content})
	}

	return c
}

// buildNameAlternatives pairs the display name with the structured name.
// When the structured parts are empty the display name is parsed instead.
func buildNameAlternatives(a model.Author, locales []string) *XMLNameAlternatives {
	alt := &XMLNameAlternatives{}

	display := strings.TrimSpace(a.PreferredPublicName.Prefer(locales...))
	if display != "" {
		alt.StringNames = []XMLStringName{{SpecificUse: "display", Value: display}}
	}

	name := personName(a.GivenName.Prefer(locales...), a.FamilyName.Prefer(locales...))
	if name == nil && display != "" {
		if parsed, ok := helpers.ParseName(display); ok {
			name = personName(parsed.GivenNames(), parsed.Family)
		}
	}
	if name == nil {
		if len(alt.StringNames) == 0 {
			return nil
		}
		name = &XMLPersonName{GivenNames: display}
	}

	name.NameStyle = "western"
	name.SpecificUse = "primary"
	alt.Names = []XMLPersonName{*name}
	return alt
}

// buildCreditRole maps a CRediT role to a role element. Roles outside the
// taxonomy are dropped.
func buildCreditRole(role model.CreditRole) (XMLRole, bool) {
	if !helpers.IsCreditRole(role.Role) {
		return XMLRole{}, false
	}
	label := helpers.CreditRoleLabel(role.Role)
	return XMLRole{
		Vocab:               "credit",
		VocabIdentifier:     helpers.CreditVocabulary,
		VocabTerm:           label,
		VocabTermIdentifier: helpers.CreditRoleURI(role.Role),
		SpecificUse:         strings.TrimSpace(role.Degree),
		Value:               label,
	}, true
}
