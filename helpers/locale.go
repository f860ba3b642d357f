package helpers

import (
	"strings"

	"golang.org/x/text/language"
)

// XMLLang maps a host locale ("en", "en_US", "pt-BR", "sr@latin") to the
// primary language subtag used in xml:lang attributes.
func XMLLang(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	tag := strings.ReplaceAll(locale, "_", "-")
	if i := strings.IndexByte(tag, '@'); i >= 0 {
		tag = tag[:i]
	}
	if t, err := language.Parse(tag); err == nil {
		if base, conf := t.Base(); conf != language.No {
			return base.String()
		}
	}
	if len(locale) > 2 {
		return locale[:2]
	}
	return locale
}
