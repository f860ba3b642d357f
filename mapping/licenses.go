package mapping

import "strings"

// ccLicenses maps a normalized Creative Commons license URL to its
// English name.
var ccLicenses = map[string]string{
	"creativecommons.org/licenses/by-nc-nd/4.0": "Creative Commons Attribution-NonCommercial-NoDerivatives 4.0 International License",
	"creativecommons.org/licenses/by-nc/4.0":    "Creative Commons Attribution-NonCommercial 4.0 International License",
	"creativecommons.org/licenses/by-nc-sa/4.0": "Creative Commons Attribution-NonCommercial-ShareAlike 4.0 International License",
	"creativecommons.org/licenses/by-nd/4.0":    "Creative Commons Attribution-NoDerivatives 4.0 International License",
	"creativecommons.org/licenses/by/4.0":       "Creative Commons Attribution 4.0 International License",
	"creativecommons.org/licenses/by-sa/4.0":    "Creative Commons Attribution-ShareAlike 4.0 International License",
	"creativecommons.org/licenses/by-nc-nd/3.0": "Creative Commons Attribution-NonCommercial-NoDerivs 3.0 Unported License",
	"creativecommons.org/licenses/by-nc/3.0":    "Creative Commons Attribution-NonCommercial 3.0 Unported License",
	"creativecommons.org/licenses/by-nc-sa/3.0": "Creative Commons Attribution-NonCommercial-ShareAlike 3.0 Unported License",
	"creativecommons.org/licenses/by-nd/3.0":    "Creative Commons Attribution-NoDerivs 3.0 Unported License",
	"creativecommons.org/licenses/by/3.0":       "Creative Commons Attribution 3.0 Unported License",
	"creativecommons.org/licenses/by-sa/3.0":    "Creative Commons Attribution-ShareAlike 3.0 Unported License",
	"creativecommons.org/publicdomain/zero/1.0": "Creative Commons CC0 1.0 Universal Public Domain Dedication",
}

// LicenseName returns the name of a Creative Commons license URL, or ""
// when the URL is not a known CC license. Scheme, "www." and trailing
// slashes are ignored, as is a trailing language path such as "deed.fr".
func LicenseName(licenseURL string) string {
	return ccLicenses[normalizeLicenseURL(licenseURL)]
}

// LicenseBadge returns the localized badge text for a Creative Commons
// license URL, or "" when the URL is not a known CC license.
func (c *Catalog) LicenseBadge(licenseURL, locale string) string {
	name := LicenseName(licenseURL)
	if name == "" {
		return ""
	}
	return c.Translate(locale, KeyLicenseBadge, map[string]string{"license": name})
}

func normalizeLicenseURL(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndexByte(u, '/'); i >= 0 && strings.HasPrefix(u[i+1:], "deed") {
		u = u[:i]
	}
	return u
}
