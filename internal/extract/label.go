package extract

import (
	"regexp"
	"strings"
)

// Vocabulary is the closed set of field labels known to appear on an
// opportunity page. A value extracted for one label runs until the next
// vocabulary label (or end of text), so a label missing from this set can
// never terminate a value. Immutable configuration, not derived from input.
type Vocabulary []string

// DefaultVocabulary lists the labels found on grants.gov opportunity pages.
var DefaultVocabulary = Vocabulary{
	"Agency",
	"Assistance Listings",
	"Posted date",
	"Closing",
	"Close date",
	"Closing date",
	"Archive date",
	"Funding opportunity number",
	"Cost sharing or matching requirement",
	"Funding instrument type",
	"Opportunity Category",
	"Opportunity Category Explanation",
	"Category of Funding Activity",
	"Category Explanation",
	"Last Updated",
}

// Find extracts the value following "<label>:" in the flattened page text,
// up to the next occurrence of any other vocabulary label followed by a
// colon, or end of text. Label matching is case-insensitive and anchored on
// a word boundary so a short label never fires inside a longer one.
// Returns the cleaned value, or "" when the label does not occur. Only the
// first occurrence of the label is considered.
//
// Known limitation: when two vocabulary labels are adjacent on the real
// page with unrelated text between them that contains no third label, the
// first value swallows that trailing text. The closed-world scan has no way
// to detect this.
func (v Vocabulary) Find(text, label string) string {
	start := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(label) + `\s*:\s*`)
	loc := start.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]

	stops := make([]string, 0, len(v))
	for _, other := range v {
		if strings.EqualFold(other, label) {
			continue
		}
		stops = append(stops, regexp.QuoteMeta(other))
	}
	if len(stops) > 0 {
		stop := regexp.MustCompile(`(?i)\b(?:` + strings.Join(stops, "|") + `)\s*:`)
		if sloc := stop.FindStringIndex(rest); sloc != nil {
			rest = rest[:sloc[0]]
		}
	}

	return CleanText(rest)
}
