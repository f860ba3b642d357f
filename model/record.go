package model

import "strconv"

// Record is everything needed to render one article.
type Record struct {
	Journal    *Journal    `yaml:"journal"`
	Section    *Section    `yaml:"section"`
	Issue      *Issue      `yaml:"issue,omitempty"`
	Submission *Submission `yaml:"submission"`
}

// Journal is the publishing context.
type Journal struct {
	ID                   int       `yaml:"id"`
	Path                 string    `yaml:"path"`
	PrimaryLocale        string    `yaml:"primary_locale"`
	SupportedLocales     []string  `yaml:"supported_locales,omitempty"`
	Name                 Localized `yaml:"name"`
	Abbreviation         Localized `yaml:"abbreviation,omitempty"`
	OnlineISSN           string    `yaml:"online_issn,omitempty"`
	PrintISSN            string    `yaml:"print_issn,omitempty"`
	PublisherInstitution string    `yaml:"publisher_institution,omitempty"`
	PublisherLocation    string    `yaml:"publisher_location,omitempty"`
	Country              string    `yaml:"country,omitempty"`
	PublisherURL         string    `yaml:"publisher_url,omitempty"`
	Editors              []Editor  `yaml:"editors,omitempty"`
}

// Editorial contributor types used in journal-meta.
const (
	EditorJournalManager = "jmanager"
	EditorEditor         = "editor"
	EditorSectionEditor  = "secteditor"
)

// Editor is a member of the journal's editorial team.
type Editor struct {
	Role       string `yaml:"role"`
	GivenName  string `yaml:"given_name"`
	FamilyName string `yaml:"family_name,omitempty"`
	Email      string `yaml:"email,omitempty"`
}

// Section groups articles within a journal.
type Section struct {
	ID           int       `yaml:"id"`
	Title        Localized `yaml:"title"`
	IdentifyType Localized `yaml:"identify_type,omitempty"`
}

// Issue is the issue an article is published in.
type Issue struct {
	ID            int       `yaml:"id"`
	Volume        string    `yaml:"volume,omitempty"`
	Number        string    `yaml:"number,omitempty"`
	Year          string    `yaml:"year,omitempty"`
	ShowVolume    bool      `yaml:"show_volume"`
	ShowNumber    bool      `yaml:"show_number"`
	ShowYear      bool      `yaml:"show_year"`
	ShowTitle     bool      `yaml:"show_title"`
	Title         Localized `yaml:"title,omitempty"`
	DatePublished string    `yaml:"date_published,omitempty"`
	CoverImageURL string    `yaml:"cover_image_url,omitempty"`
}

// Submission is the article being rendered.
type Submission struct {
	ID            int          `yaml:"id"`
	Locale        string       `yaml:"locale"`
	Pages         string       `yaml:"pages,omitempty"`
	DateSubmitted string       `yaml:"date_submitted,omitempty"`
	Publication   *Publication `yaml:"publication"`
	Galleys       []Galley     `yaml:"galleys,omitempty"`
}

// BestID returns the identifier used in article URLs.
func (s *Submission) BestID() string {
	if s.Publication != nil && s.Publication.URLPath != "" {
		return s.Publication.URLPath
	}
	return strconv.Itoa(s.ID)
}

// Publication is the current version of a submission.
type Publication struct {
	ID                   int           `yaml:"id"`
	Locale               string        `yaml:"locale,omitempty"`
	Title                Localized     `yaml:"title"`
	Subtitle             Localized     `yaml:"subtitle,omitempty"`
	Abstract             Localized     `yaml:"abstract,omitempty"`
	PlainLanguageSummary Localized     `yaml:"plain_language_summary,omitempty"`
	Authors              []Author      `yaml:"authors,omitempty"`
	PrimaryContactID     int           `yaml:"primary_contact_id,omitempty"`
	Keywords             LocalizedList `yaml:"keywords,omitempty"`
	Pages                string        `yaml:"pages,omitempty"`
	CopyrightYear        string        `yaml:"copyright_year,omitempty"`
	CopyrightHolder      Localized     `yaml:"copyright_holder,omitempty"`
	LicenseURL           string        `yaml:"license_url,omitempty"`
	DOI                  string        `yaml:"doi,omitempty"`
	URLPath              string        `yaml:"url_path,omitempty"`
	DatePublished        string        `yaml:"date_published,omitempty"`
	Seq                  int           `yaml:"seq,omitempty"`
	Citations            []Citation    `yaml:"citations,omitempty"`
}

// Author is a contributor to a publication.
type Author struct {
	ID                  int           `yaml:"id"`
	GivenName           Localized     `yaml:"given_name"`
	FamilyName          Localized     `yaml:"family_name,omitempty"`
	PreferredPublicName Localized     `yaml:"preferred_public_name,omitempty"`
	Email               string        `yaml:"email,omitempty"`
	URL                 string        `yaml:"url,omitempty"`
	ORCID               string        `yaml:"orcid,omitempty"`
	ORCIDVerified       bool          `yaml:"orcid_verified,omitempty"`
	Affiliations        []Affiliation `yaml:"affiliations,omitempty"`
	CreditRoles         []CreditRole  `yaml:"credit_roles,omitempty"`
	Biography           Localized     `yaml:"biography,omitempty"`
}

// Affiliation is an institution an author belongs to.
type Affiliation struct {
	Name Localized `yaml:"name"`
	ROR  string    `yaml:"ror,omitempty"`
}

// CreditRole is a CRediT contributor role with an optional degree
// (lead, equal, supporting).
type CreditRole struct {
	Role   string `yaml:"role"`
	Degree string `yaml:"degree,omitempty"`
}

// Galley is a publication-ready rendition of the article.
type Galley struct {
	ID               int    `yaml:"id"`
	Label            string `yaml:"label,omitempty"`
	Locale           string `yaml:"locale,omitempty"`
	FileType         string `yaml:"file_type,omitempty"`
	SubmissionFileID int    `yaml:"submission_file_id"`
}

// File stages a submission file can be in.
const (
	FileStageProductionReady = 10
	FileStageProof           = 15
)

// SubmissionFile is a stored file attached to a submission.
type SubmissionFile struct {
	ID           int       `yaml:"id"`
	FileID       int       `yaml:"file_id"`
	SubmissionID int       `yaml:"submission_id"`
	FileStage    int       `yaml:"file_stage"`
	Path         string    `yaml:"path"`
	Name         Localized `yaml:"name,omitempty"`
	MIMEType     string    `yaml:"mime_type,omitempty"`
}
