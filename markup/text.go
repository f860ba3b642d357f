package markup

import "strings"

// Paragraph escapes plain text and wraps it in one JATS paragraph. It
// returns "" when the text is blank.
func Paragraph(text string) string {
	text = strings.TrimSpace(cleanText(text))
	if text == "" {
		return ""
	}
	return "<p>" + Escape(text) + "</p>"
}

// cleanText drops invalid UTF-8 and the characters XML 1.0 does not allow,
// such as the form feeds pdftotext writes between pages.
func cleanText(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r < 0x20:
			if r == '\f' {
				return '\n'
			}
			return -1
		case r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}
