package helpers

import "testing"

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"<p>a</p><p>b</p>", "a b"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<!-- note -->text", "text"},
		{"line<br/>break", "line break"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.input); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsBlankHTML(t *testing.T) {
	tests := map[string]bool{
		"":                  true,
		"<p> </p>":          true,
		"<italic></italic>": true,
		"<p>x</p>":          false,
		"&amp;":             false,
	}
	for input, want := range tests {
		if got := IsBlankHTML(input); got != want {
			t.Errorf("IsBlankHTML(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    PartialDate
		wantErr bool
	}{
		{"2024-05-03", PartialDate{2024, 5, 3}, false},
		{"2023-11-02 10:15:00", PartialDate{2023, 11, 2}, false},
		{"2023-11-02T10:15:00Z", PartialDate{2023, 11, 2}, false},
		{"2022-01", PartialDate{2022, 1, 0}, false},
		{"1978", PartialDate{1978, 0, 0}, false},
		{"", PartialDate{}, false},
		{"2022-13-01", PartialDate{}, true},
		{"next week", PartialDate{}, true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestPartialDateISO(t *testing.T) {
	tests := map[PartialDate]string{
		{}:           "",
		{2024, 0, 0}: "2024",
		{2024, 5, 0}: "2024-05",
		{2024, 5, 3}: "2024-05-03",
	}
	for d, want := range tests {
		if got := d.ISO(); got != want {
			t.Errorf("%+v.ISO() = %q, want %q", d, got, want)
		}
	}
}

func TestExtractYear(t *testing.T) {
	tests := map[string]string{
		"2019-04":        "2019",
		"Spring 2019":    "2019",
		"c. 1850 or so":  "1850",
		"no year":        "",
		"2024-05-03 9am": "2024",
	}
	for input, want := range tests {
		if got := ExtractYear(input); got != want {
			t.Errorf("ExtractYear(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		input string
		want  ParsedName
	}{
		{"Ada Lovelace", ParsedName{Given: "Ada", Family: "Lovelace"}},
		{"Doe, Jane", ParsedName{Given: "Jane", Family: "Doe"}},
		{"John Q. Public", ParsedName{Given: "John", Middle: "Q.", Family: "Public"}},
		{"Ludwig van Beethoven", ParsedName{Given: "Ludwig", Prefix: "van", Family: "van Beethoven"}},
		{"Martin Luther King Jr.", ParsedName{Given: "Martin", Middle: "Luther", Family: "King", Suffix: "Jr."}},
		{"Prince", ParsedName{Family: "Prince"}},
	}
	for _, tt := range tests {
		got, ok := ParseName(tt.input)
		if !ok {
			t.Errorf("ParseName(%q) failed", tt.input)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseName(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}

	if _, ok := ParseName("   "); ok {
		t.Error("ParseName of a blank name should fail")
	}
}

func TestGivenNames(t *testing.T) {
	p := ParsedName{Given: "John", Middle: "Q."}
	if got := p.GivenNames(); got != "John Q." {
		t.Errorf("GivenNames() = %q, want %q", got, "John Q.")
	}
}

func TestCredit(t *testing.T) {
	uri := "https://credit.niso.org/contributor-roles/data-curation/"
	if got := CreditSlugFromURI(uri); got != "data-curation" {
		t.Errorf("CreditSlugFromURI(%q) = %q", uri, got)
	}
	if got := CreditRoleURI("Data-Curation"); got != uri {
		t.Errorf("CreditRoleURI() = %q, want %q", got, uri)
	}
	if got := CreditRoleLabel(uri); got != "Data curation" {
		t.Errorf("CreditRoleLabel() = %q, want Data curation", got)
	}
	if IsCreditRole("not-a-role") {
		t.Error("not-a-role should not be a CRediT role")
	}
	if got := CreditRoleURI(""); got != "" {
		t.Errorf("CreditRoleURI(\"\") = %q, want empty", got)
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		idType IdentifierType
		input  string
		want   string
	}{
		{IdentifierDOI, "https://doi.org/10.1234/abc", "10.1234/abc"},
		{IdentifierDOI, "doi:10.1234/abc", "10.1234/abc"},
		{IdentifierHandle, "hdl:1721.1/123", "1721.1/123"},
		{IdentifierORCID, "https://orcid.org/0000-0002-1825-009x", "0000-0002-1825-009X"},
		{IdentifierROR, "https://ror.org/012AFJB06", "012afjb06"},
		{IdentifierArxiv, "arXiv:2101.00001", "2101.00001"},
		{IdentifierURN, " urn:nbn:de:1 ", "urn:nbn:de:1"},
	}
	for _, tt := range tests {
		if got := NormalizeIdentifier(tt.idType, tt.input); got != tt.want {
			t.Errorf("NormalizeIdentifier(%s, %q) = %q, want %q", tt.idType, tt.input, got, tt.want)
		}
	}
}

func TestIdentifierChecks(t *testing.T) {
	if !IsDOI("https://doi.org/10.1234/jt.42") || IsDOI("10.12/x") {
		t.Error("IsDOI misclassified")
	}
	if !IsORCID("0000-0002-1825-0097") || IsORCID("0000-0002-1825") {
		t.Error("IsORCID misclassified")
	}
	if !IsROR("012afjb06") || IsROR("lehigh") {
		t.Error("IsROR misclassified")
	}
	if got := IdentifierURI(IdentifierORCID, "0000-0002-1825-0097"); got != "https://orcid.org/0000-0002-1825-0097" {
		t.Errorf("IdentifierURI() = %q", got)
	}
}

func TestXMLLang(t *testing.T) {
	tests := map[string]string{
		"en_US":    "en",
		"fr_CA":    "fr",
		"pt-BR":    "pt",
		"sr@latin": "sr",
		"en":       "en",
		"":         "",
	}
	for input, want := range tests {
		if got := XMLLang(input); got != want {
			t.Errorf("XMLLang(%q) = %q, want %q", input, got, want)
		}
	}
}
