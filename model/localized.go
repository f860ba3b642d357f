// Package model holds the read-only view-models a host supplies for one
// rendering request.
package model

import (
	"sort"
	"strings"
)

// Localized is a value keyed by locale (e.g. "en", "fr_CA").
type Localized map[string]string

// Get returns the value for locale. An empty locale selects the first
// non-empty value in Locales order.
func (l Localized) Get(locale string) string {
	if v := l[locale]; v != "" {
		return v
	}
	if locale != "" {
		return ""
	}
	for _, loc := range l.Locales() {
		if v := l[loc]; v != "" {
			return v
		}
	}
	return ""
}

// Prefer returns the value for the first locale in order that has one.
func (l Localized) Prefer(locales ...string) string {
	_, v := l.PreferLocale(locales...)
	return v
}

// PreferLocale is Prefer that also reports the locale the value came from.
// When none of locales has text, the first locale in Locales order with
// text is used. It returns "", "" when no locale has text.
func (l Localized) PreferLocale(locales ...string) (string, string) {
	for _, loc := range locales {
		if strings.TrimSpace(l[loc]) != "" {
			return loc, l[loc]
		}
	}
	for _, loc := range l.Locales() {
		if strings.TrimSpace(l[loc]) != "" {
			return loc, l[loc]
		}
	}
	return "", ""
}

// Locales returns the locales with a value, sorted.
func (l Localized) Locales() []string {
	locales := make([]string, 0, len(l))
	for loc, v := range l {
		if v == "" {
			continue
		}
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	return locales
}

// LocalizedList is a list of values keyed by locale, used for keywords.
type LocalizedList map[string][]string

// Locales returns the locales with at least one value, sorted.
func (l LocalizedList) Locales() []string {
	locales := make([]string, 0, len(l))
	for loc, v := range l {
		if len(v) == 0 {
			continue
		}
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	return locales
}
