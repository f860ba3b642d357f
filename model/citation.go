package model

// Citation is one entry in a publication's reference list. A citation with
// an empty Type is unstructured and only Raw is used.
type Citation struct {
	Raw        string   `yaml:"raw,omitempty"`
	Type       string   `yaml:"type,omitempty"`
	SourceType string   `yaml:"source_type,omitempty"`
	Authors    []string `yaml:"authors,omitempty"`
	Date       string   `yaml:"date,omitempty"`
	Title      string   `yaml:"title,omitempty"`
	SourceName string   `yaml:"source_name,omitempty"`
	FirstPage  string   `yaml:"first_page,omitempty"`
	LastPage   string   `yaml:"last_page,omitempty"`
	Volume     string   `yaml:"volume,omitempty"`
	Issue      string   `yaml:"issue,omitempty"`
	DOI        string   `yaml:"doi,omitempty"`
	Handle     string   `yaml:"handle,omitempty"`
	Arxiv      string   `yaml:"arxiv,omitempty"`
	URN        string   `yaml:"urn,omitempty"`
	URL        string   `yaml:"url,omitempty"`
}

// Structured reports whether the citation carries parsed fields.
func (c Citation) Structured() bool {
	return c.Type != ""
}
