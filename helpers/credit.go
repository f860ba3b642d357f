package helpers

import "strings"

// CreditVocabulary is the vocab-identifier of the CRediT taxonomy.
const CreditVocabulary = "https://credit.niso.org/"

// creditRoleBase prefixes every CRediT role term identifier.
const creditRoleBase = CreditVocabulary + "contributor-roles/"

// CreditRoles maps CRediT role slugs to their English terms.
var CreditRoles = map[string]string{
	"conceptualization":      "Conceptualization",
	"data-curation":          "Data curation",
	"formal-analysis":        "Formal analysis",
	"funding-acquisition":    "Funding acquisition",
	"investigation":          "Investigation",
	"methodology":            "Methodology",
	"project-administration": "Project administration",
	"resources":              "Resources",
	"software":               "Software",
	"supervision":            "Supervision",
	"validation":             "Validation",
	"visualization":          "Visualization",
	"writing-original-draft": "Writing – original draft",
	"writing-review-editing": "Writing – review & editing",
}

// CreditSlugFromURI extracts the role slug from a URI like
// "https://credit.niso.org/contributor-roles/data-curation/".
func CreditSlugFromURI(uri string) string {
	uri = strings.TrimSpace(uri)
	if i := strings.Index(uri, "contributor-roles/"); i >= 0 {
		uri = uri[i+len("contributor-roles/"):]
	}
	return strings.ToLower(strings.Trim(uri, "/"))
}

// CreditRoleURI returns the term identifier for a role given as slug or URI.
func CreditRoleURI(slugOrURI string) string {
	slug := CreditSlugFromURI(slugOrURI)
	if slug == "" {
		return ""
	}
	return creditRoleBase + slug + "/"
}

// CreditRoleLabel returns the term for a role given as slug or URI.
// Unknown roles are returned as given.
func CreditRoleLabel(slugOrURI string) string {
	if label, ok := CreditRoles[CreditSlugFromURI(slugOrURI)]; ok {
		return label
	}
	return slugOrURI
}

// IsCreditRole reports whether the role is part of the taxonomy.
func IsCreditRole(slugOrURI string) bool {
	_, ok := CreditRoles[CreditSlugFromURI(slugOrURI)]
	return ok
}
