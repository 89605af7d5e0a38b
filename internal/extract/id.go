package extract

import (
	"regexp"
	"sort"
)

var (
	detailIDPattern      = regexp.MustCompile(`/search-results-detail/(\d+)`)
	opportunityIDPattern = regexp.MustCompile(`/opportunity/([0-9a-fA-F-]{16,})`)
	listingCodePattern   = regexp.MustCompile(`\b\d{2}\.\d{3}\b`)
)

// OpportunityID pulls the opportunity identifier out of a source URL.
// Two path shapes are recognized, tried in order:
//
//	/search-results-detail/<digits>
//	/opportunity/<16+ hex chars>
//
// Returns "" when neither matches.
func OpportunityID(url string) string {
	if m := detailIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := opportunityIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// ListingCodes extracts assistance listing codes (NN.NNN) from a label
// value, deduplicated and sorted. Returns nil when none are found.
func ListingCodes(s string) []string {
	matches := listingCodePattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	codes := make([]string, 0, len(matches))
	for _, code := range matches {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
