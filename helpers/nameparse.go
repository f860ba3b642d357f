package helpers

import (
	"regexp"
	"strings"
)

// ParsedName is a personal name split into its parts.
type ParsedName struct {
	Given  string
	Middle string
	Family string
	Prefix string
	Suffix string
}

// GivenNames returns the given and middle names joined for a JATS given-names element.
func (p ParsedName) GivenNames() string {
	return strings.TrimSpace(p.Given + " " + p.Middle)
}

var (
	// Suffixes that appear after a name
	suffixes = []string{"Jr.", "Jr", "Sr.", "Sr", "III", "II", "IV", "PhD", "Ph.D.", "MD", "M.D.", "Esq.", "Esq"}

	// Name prefixes (nobiliary particles)
	prefixes = []string{"van", "von", "de", "del", "della", "di", "da", "le", "la", "du", "des", "den", "der", "het", "ter", "ten", "op", "mc", "mac", "o'", "d'", "al-", "el-", "ibn"}

	// Pattern for "Last, First Middle" format
	invertedNameRegex = regexp.MustCompile(`^([^,]+),\s*(.+)$`)
)

// ParseName parses a name string into its components.
// Handles both "First Last" and "Last, First" formats. It returns false
// for an empty name.
func ParseName(name string) (ParsedName, bool) {
	name = NormalizeWhitespace(name)
	if name == "" {
		return ParsedName{}, false
	}

	var result ParsedName

	// Inverted format: "Last, First Middle Suffix"
	if matches := invertedNameRegex.FindStringSubmatch(name); matches != nil {
		result.Family = strings.TrimSpace(matches[1])
		rest := strings.TrimSpace(matches[2])
		rest, result.Suffix = extractSuffix(rest)

		parts := strings.Fields(rest)
		if len(parts) > 0 {
			result.Given = parts[0]
		}
		if len(parts) > 1 {
			result.Middle = strings.Join(parts[1:], " ")
		}
		return result, true
	}

	// Direct format: "First Middle Prefix Last Suffix"
	name, result.Suffix = extractSuffix(name)
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ParsedName{}, false
	}

	if len(parts) == 1 {
		// Single name - treat as family name
		result.Family = parts[0]
		return result, true
	}

	familyStart := len(parts) - 1
	if familyStart > 1 && isPrefix(parts[familyStart-1]) {
		result.Prefix = parts[familyStart-1]
		familyStart--
	}
	result.Family = strings.Join(parts[familyStart:], " ")
	result.Given = parts[0]
	if familyStart > 1 {
		result.Middle = strings.Join(parts[1:familyStart], " ")
	}

	return result, true
}

// extractSuffix extracts a suffix from a name string.
func extractSuffix(name string) (string, string) {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, ", "+suffix) {
			return strings.TrimSuffix(name, ", "+suffix), suffix
		}
		if strings.HasSuffix(name, " "+suffix) {
			return strings.TrimSuffix(name, " "+suffix), suffix
		}
	}
	return name, ""
}

// isPrefix checks if a word is a nobiliary particle.
func isPrefix(word string) bool {
	lower := strings.ToLower(word)
	for _, prefix := range prefixes {
		if lower == prefix || lower == strings.TrimSuffix(prefix, "'") {
			return true
		}
	}
	return false
}
