package helpers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PartialDate is a calendar date where month and day may be unknown (zero).
type PartialDate struct {
	Year  int
	Month int
	Day   int
}

// IsZero reports whether no year is known.
func (d PartialDate) IsZero() bool {
	return d.Year == 0
}

// ISO returns the date in ISO 8601 form at its known precision.
func (d PartialDate) ISO() string {
	switch {
	case d.Year == 0:
		return ""
	case d.Month == 0:
		return fmt.Sprintf("%04d", d.Year)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

var (
	// Year only: 1978
	yearOnlyRegex = regexp.MustCompile(`^(\d{4})$`)

	// Year-month: 1978-03
	yearMonthRegex = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

	// Full date: 1978-03-15
	fullDateRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

	// Timestamp with a date prefix: 2024-12-13 22:43:14 or 2024-12-13T22:43:14
	timestampRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[T ](\d{2}):(\d{2})`)

	// Any four digit year inside free text: "Spring 2019"
	embeddedYearRegex = regexp.MustCompile(`\b(\d{4})\b`)
)

// ParseDate parses the date formats hosts store: RFC 3339 timestamps,
// SQL datetimes, and ISO dates at year, month or day precision.
func ParseDate(input string) (PartialDate, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return PartialDate{}, nil
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return PartialDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
	}

	if matches := timestampRegex.FindStringSubmatch(input); matches != nil {
		return dateFromParts(input, matches[1], matches[2], matches[3])
	}

	if matches := fullDateRegex.FindStringSubmatch(input); matches != nil {
		return dateFromParts(input, matches[1], matches[2], matches[3])
	}

	if matches := yearMonthRegex.FindStringSubmatch(input); matches != nil {
		return dateFromParts(input, matches[1], matches[2], "")
	}

	if matches := yearOnlyRegex.FindStringSubmatch(input); matches != nil {
		return dateFromParts(input, matches[1], "", "")
	}

	return PartialDate{}, fmt.Errorf("unrecognized date %q", input)
}

// ExtractYear returns the first four digit year in a free-text date, or "".
func ExtractYear(input string) string {
	if d, err := ParseDate(input); err == nil && !d.IsZero() {
		return fmt.Sprintf("%04d", d.Year)
	}
	if matches := embeddedYearRegex.FindStringSubmatch(input); matches != nil {
		return matches[1]
	}
	return ""
}

func dateFromParts(input, year, month, day string) (PartialDate, error) {
	var d PartialDate
	var err error
	if d.Year, err = strconv.Atoi(year); err != nil {
		return PartialDate{}, fmt.Errorf("parsing year in %q: %w", input, err)
	}
	if month != "" {
		if d.Month, err = strconv.Atoi(month); err != nil {
			return PartialDate{}, fmt.Errorf("parsing month in %q: %w", input, err)
		}
		if d.Month < 1 || d.Month > 12 {
			return PartialDate{}, fmt.Errorf("month out of range in %q", input)
		}
	}
	if day != "" {
		if d.Day, err = strconv.Atoi(day); err != nil {
			return PartialDate{}, fmt.Errorf("parsing day in %q: %w", input, err)
		}
		if d.Day < 1 || d.Day > 31 {
			return PartialDate{}, fmt.Errorf("day out of range in %q", input)
		}
	}
	return d, nil
}
