package helpers

import (
	"regexp"
	"strings"
)

// IdentifierType names the persistent identifier schemes the builders emit.
type IdentifierType string

const (
	IdentifierDOI    IdentifierType = "doi"
	IdentifierHandle IdentifierType = "handle"
	IdentifierArxiv  IdentifierType = "arxiv"
	IdentifierURN    IdentifierType = "urn"
	IdentifierORCID  IdentifierType = "orcid"
	IdentifierROR    IdentifierType = "ror"
)

var (
	doiRegex   = regexp.MustCompile(`^10\.\d{4,}/[^\s]+$`)
	orcidRegex = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)
	rorRegex   = regexp.MustCompile(`^0[a-hj-km-np-tv-z0-9]{6}\d{2}$`)
)

// IdentifierURI returns the identifier as a resolvable URI where possible.
func IdentifierURI(idType IdentifierType, value string) string {
	value = NormalizeIdentifier(idType, value)
	if value == "" {
		return ""
	}
	switch idType {
	case IdentifierDOI:
		return "https://doi.org/" + value
	case IdentifierHandle:
		return "https://hdl.handle.net/" + value
	case IdentifierORCID:
		return "https://orcid.org/" + value
	case IdentifierROR:
		return "https://ror.org/" + value
	case IdentifierArxiv:
		return "https://arxiv.org/abs/" + value
	default:
		return value
	}
}

// NormalizeIdentifier strips resolver prefixes so only the bare identifier remains.
func NormalizeIdentifier(idType IdentifierType, value string) string {
	value = strings.TrimSpace(value)

	switch idType {
	case IdentifierDOI:
		for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:", "DOI:"} {
			value = strings.TrimPrefix(value, prefix)
		}
		return value

	case IdentifierHandle:
		for _, prefix := range []string{"https://hdl.handle.net/", "http://hdl.handle.net/", "hdl:"} {
			value = strings.TrimPrefix(value, prefix)
		}
		return value

	case IdentifierORCID:
		for _, prefix := range []string{"https://orcid.org/", "http://orcid.org/", "orcid:"} {
			value = strings.TrimPrefix(value, prefix)
		}
		return strings.ToUpper(value)

	case IdentifierROR:
		for _, prefix := range []string{"https://ror.org/", "http://ror.org/", "ror.org/"} {
			value = strings.TrimPrefix(value, prefix)
		}
		return strings.ToLower(value)

	case IdentifierArxiv:
		value = strings.TrimPrefix(value, "https://arxiv.org/abs/")
		value = strings.TrimPrefix(value, "arXiv:")
		return value

	default:
		return value
	}
}

// IsDOI reports whether value is a DOI, bare or with a resolver prefix.
func IsDOI(value string) bool {
	return doiRegex.MatchString(NormalizeIdentifier(IdentifierDOI, value))
}

// IsORCID reports whether value is a well-formed ORCID iD.
func IsORCID(value string) bool {
	return orcidRegex.MatchString(NormalizeIdentifier(IdentifierORCID, value))
}

// IsROR reports whether value is a well-formed ROR id.
func IsROR(value string) bool {
	return rorRegex.MatchString(NormalizeIdentifier(IdentifierROR, value))
}
