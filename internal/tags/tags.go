// Package tags derives topic tags for an assembled opportunity record.
//
// Tagging is rule-based and deterministic: a fixed, ordered table maps each
// tag to a keyword set, and a tag fires when any keyword appears
// (case-insensitive) in the concatenated text fields of the record. Two
// derived tags follow the table: has_deadline when a close date is present
// and cost_sharing when the cost-sharing flag is explicitly true. The final
// list is deduplicated preserving first occurrence.
package tags

import (
	"strings"

	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/opportunity"
)

// Rule maps one tag to the keywords that trigger it.
type Rule struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// DefaultRules is the built-in tag rule table, applied in order.
var DefaultRules = []Rule{
	{Tag: "health_biomed", Keywords: []string{"health", "cdc", "nih", "disease", "registry"}},
	{Tag: "ai_ml", Keywords: []string{"ai", "machine learning", "artificial intelligence", "deep learning", "llm", "nlp"}},
	{Tag: "cybersecurity", Keywords: []string{"cyber", "ransomware", "phishing", "zero trust", "infosec"}},
	{Tag: "education", Keywords: []string{"education", "teacher", "school", "curriculum"}},
	{Tag: "climate_environment", Keywords: []string{"climate", "environment", "sustainability", "emissions"}},
	{Tag: "energy", Keywords: []string{"energy", "renewable", "solar", "wind", "grid", "battery"}},
}

// Apply evaluates the rule table against the record and returns the ordered,
// deduplicated tag list: rule-table tags first (in table order), then the
// derived has_deadline and cost_sharing tags when applicable. Tags are only
// ever added, never removed.
func Apply(rules []Rule, o *opportunity.Opportunity) []string {
	hay := haystack(o)

	var out []string
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(hay, strings.ToLower(kw)) {
				out = append(out, rule.Tag)
				break
			}
		}
	}

	if o.CloseDate != nil && *o.CloseDate != "" {
		out = append(out, "has_deadline")
	}
	if o.IsCostSharing != nil && *o.IsCostSharing {
		out = append(out, "cost_sharing")
	}

	return dedupe(out)
}

// haystack lowercases and joins the record fields searched by the rules.
func haystack(o *opportunity.Opportunity) string {
	parts := []string{
		deref(o.OpportunityTitle),
		deref(o.AgencyName),
		deref(o.Category),
		strings.Join(o.FundingCategories, " "),
		deref(o.ApplicantEligibilityDesc),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// dedupe removes repeated tags, keeping the first occurrence of each.
func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, tag := range in {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
