package extract

import (
	"regexp"
	"time"
)

// dateFormats are tried in order by ToISODate. The slash and month-name
// layouts accept both padded and unpadded day/month digits.
var dateFormats = []string{
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
}

var (
	monthDatePattern = regexp.MustCompile(`\b([A-Za-z]+ \d{1,2}, \d{4})\b`)
	slashDatePattern = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)
	isoDatePattern   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
)

// ToISODate normalizes a raw date string to ISO YYYY-MM-DD form. The first
// layout that parses wins. When nothing parses the cleaned input is
// returned unchanged: callers get best-effort data, never an error, and
// must not assume every date field is machine-parseable.
func ToISODate(s string) string {
	s = CleanText(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// FirstDateToken scans free text (e.g. "Closing on or about August 1, 2025
// at 5:00 PM") for the first recognizable date and returns it in canonical
// form. Patterns are tried in priority order: month-name date, slash date,
// ISO date. Only the first match of the winning pattern is used; spans
// holding several dates yield just one. Returns "" when no pattern matches.
func FirstDateToken(s string) string {
	s = CleanText(s)
	if s == "" {
		return ""
	}

	if m := monthDatePattern.FindStringSubmatch(s); m != nil {
		return ToISODate(m[1])
	}
	if m := slashDatePattern.FindStringSubmatch(s); m != nil {
		return ToISODate(m[1])
	}
	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		// Already canonical.
		return m[1]
	}

	return ""
}
