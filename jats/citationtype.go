package jats

// citationSpecialTypes take precedence over the general table.
var citationSpecialTypes = map[string]string{
	"component":       "component",
	"dissertation":    "dissertation",
	"erratum":         "erratum",
	"editorial":       "journal",
	"grant":           "grant",
	"libguides":       "libguides",
	"paratext":        "paratext",
	"reference-entry": "reference-entry",
	"retraction":      "retraction",
}

// citationTypes maps citation types to JATS publication-type categories.
var citationTypes = map[string]string{
	"journal":                 "journal",
	"journal-article":         "journal",
	"journal-issue":           "journal",
	"journal-volume":          "journal",
	"book":                    "book",
	"monograph":               "book",
	"edited-book":             "book",
	"book-chapter":            "book",
	"book-part":               "book",
	"book-section":            "book",
	"book-series":             "book",
	"book-set":                "book",
	"book-track":              "book",
	"reference-book":          "book",
	"database":                "data",
	"dataset":                 "data",
	"supplementary-materials": "data",
	"letter":                  "letter",
	"other":                   "other",
	"peer-review":             "review",
	"review":                  "review",
	"posted-content":          "preprint",
	"preprint":                "preprint",
	"proceedings":             "conference",
	"proceedings-article":     "conference",
	"proceedings-series":      "conference",
	"report":                  "report",
	"report-component":        "report",
	"report-series":           "report",
	"standard":                "standard",
}

// citationSourceTypes is consulted when the citation type itself is unknown.
var citationSourceTypes = map[string]string{
	"book-series":    "book",
	"conference":     "conference",
	"ebook-platform": "book",
	"journal":        "journal",
	"repository":     "repository",
}

// PublicationType returns the JATS publication-type for a citation type.
// Types outside the tables are returned unchanged.
func PublicationType(citationType string) string {
	return publicationType(citationType, "")
}

func publicationType(citationType, sourceType string) string {
	if t, ok := citationSpecialTypes[citationType]; ok {
		return t
	}
	if t, ok := citationTypes[citationType]; ok {
		return t
	}
	if t, ok := citationSourceTypes[sourceType]; ok {
		return t
	}
	return citationType
}

// titleKind selects the title elements a citation type uses.
type titleKind int

const (
	titleSource titleKind = iota
	titlePart
	titleData
	titleArticle
	titleIssue
)

func citationTitleKind(citationType string) titleKind {
	switch citationType {
	case "book-chapter", "book-part", "book-section", "book-track", "reference-entry":
		return titlePart
	case "dataset", "database":
		return titleData
	case "journal-article", "preprint", "posted-content":
		return titleArticle
	case "journal-issue":
		return titleIssue
	default:
		return titleSource
	}
}
