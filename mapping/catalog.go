// Package mapping holds the localized message catalog and the license
// table used when rendering article metadata.
package mapping

import (
	"sort"
	"strings"
)

// DefaultLocale is used when a message has no translation for the
// requested locale.
const DefaultLocale = "en"

// Message keys used by the renderer.
const (
	KeyKeywords           = "common.keywords"
	KeyCopyrightStatement = "submission.copyrightStatement"
	KeyLicenseBadge       = "submission.license.cc.badge"
)

// MessageFile is one locale's YAML message file.
type MessageFile struct {
	// Locale is the locale the messages are written in (e.g., "fr", "fr_CA").
	// Defaults to the file name without extension.
	Locale string `yaml:"locale"`

	// Messages maps message keys to text. Parameters are written {name}.
	Messages map[string]string `yaml:"messages"`
}

// Catalog resolves message keys to localized text.
type Catalog struct {
	messages map[string]map[string]string
}

// Translate returns the message for key in locale, substituting {name}
// parameters. The lookup falls back from the full locale to its language
// and then to DefaultLocale. An unknown key is returned unchanged.
func (c *Catalog) Translate(locale, key string, params map[string]string) string {
	text, ok := c.lookup(locale, key)
	if !ok {
		return key
	}
	if len(params) == 0 {
		return text
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, 2*len(params))
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", params[name])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func (c *Catalog) lookup(locale, key string) (string, bool) {
	for _, loc := range fallbackLocales(locale) {
		if text, ok := c.messages[loc][key]; ok {
			return text, true
		}
	}
	return "", false
}

// Locales returns the locales with at least one message, sorted.
func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.messages))
	for loc := range c.messages {
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	return locales
}

// Add merges messages for a locale into the catalog. Later keys win.
func (c *Catalog) Add(locale string, messages map[string]string) {
	locale = normalizeLocale(locale)
	if c.messages[locale] == nil {
		c.messages[locale] = make(map[string]string, len(messages))
	}
	for k, v := range messages {
		c.messages[locale][k] = v
	}
}

func fallbackLocales(locale string) []string {
	locale = normalizeLocale(locale)
	out := make([]string, 0, 3)
	if locale != "" {
		out = append(out, locale)
		if i := strings.IndexByte(locale, '_'); i > 0 {
			out = append(out, locale[:i])
		}
	}
	return append(out, DefaultLocale)
}

// normalizeLocale maps "fr-CA" and "fr_CA@latin" to "fr_CA".
func normalizeLocale(locale string) string {
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(strings.TrimSpace(locale), "-", "_")
}
