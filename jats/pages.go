package jats

import (
	"regexp"
	"strconv"
)

// pagePatterns are tried in order; the first match wins. from and to are
// the submatch indexes of the first and last page.
var pagePatterns = []struct {
	re       *regexp.Regexp
	from, to int
}{
	{regexp.MustCompile(`^(\d+)$`), 1, 1},
	{regexp.MustCompile(`^[Pp][Pp]?[.]?[ ]?(\d+)$`), 1, 1},
	{regexp.MustCompile(`^[Pp][Pp]?[.]?[ ]?(\d+)[ ]?-[ ]?([Pp][Pp]?[.]?[ ]?)?(\d+)$`), 1, 3},
	{regexp.MustCompile(`^(\d+)[ ]?-[ ]?(\d+)$`), 1, 2},
}

// PageRange is the result of parsing a free-text pages field.
type PageRange struct {
	First string
	Last  string
	// Count is the number of pages, or 0 when it could not be computed.
	Count int
}

// ParsePages parses a pages string such as "12", "pp. 3-9" or "101 - 110".
// It reports false when no pattern matches. First and Last keep the digits
// as written. Count is 0 when a bound does not fit an int or the range
// runs backwards.
func ParsePages(pages string) (PageRange, bool) {
	for _, p := range pagePatterns {
		m := p.re.FindStringSubmatch(pages)
		if m == nil {
			continue
		}
		r := PageRange{First: m[p.from], Last: m[p.to]}
		r.Count = pageCount(r.First, r.Last)
		return r, true
	}
	return PageRange{}, false
}

func pageCount(first, last string) int {
	from, err := strconv.Atoi(first)
	if err != nil {
		return 0
	}
	to, err := strconv.Atoi(last)
	if err != nil {
		return 0
	}
	if n := to - from + 1; n > 0 {
		return n
	}
	return 0
}
