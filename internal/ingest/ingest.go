// Package ingest assembles a normalized Opportunity record from one parsed
// opportunity page.
//
// The Builder walks the label vocabulary against the flattened page text,
// normalizes dates, classifies links, and finishes with rule-based tagging.
// Assembly never fails: a field whose label is missing or whose value is
// malformed simply stays absent from the record.
package ingest

import (
	"strings"
	"sync"

	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/extract"
	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/opportunity"
	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/scraper"
	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/tags"
)

// Builder assembles opportunity records against an injected label
// vocabulary and tag rule table. Both tables are read-only, so one Builder
// is safe to share across concurrent page ingests.
type Builder struct {
	vocab extract.Vocabulary
	rules []tags.Rule
}

// NewBuilder creates a Builder. Nil arguments fall back to the default
// vocabulary and rule table.
func NewBuilder(vocab extract.Vocabulary, rules []tags.Rule) *Builder {
	if vocab == nil {
		vocab = extract.DefaultVocabulary
	}
	if rules == nil {
		rules = tags.DefaultRules
	}
	return &Builder{vocab: vocab, rules: rules}
}

// Build assembles one Opportunity from a parsed page. Field extraction runs
// in a fixed order, but fields are independent; only the final values feed
// tagging.
func (b *Builder) Build(page *scraper.Page) *opportunity.Opportunity {
	opp := opportunity.New(extract.OpportunityID(page.SourceURL), page.Title)

	text := page.Text

	setString(&opp.AgencyName, b.vocab.Find(text, "Agency"))
	setString(&opp.OpportunityNumber, b.vocab.Find(text, "Funding opportunity number"))

	postedRaw := b.vocab.Find(text, "Posted date")
	closeRaw := b.findFirst(text, "Closing", "Close date", "Closing date")
	archiveRaw := b.vocab.Find(text, "Archive date")

	setString(&opp.PostDate, extract.FirstDateToken(postedRaw))
	setString(&opp.CloseDate, extract.FirstDateToken(closeRaw))
	setString(&opp.ArchiveDate, extract.FirstDateToken(archiveRaw))

	if cs := b.vocab.Find(text, "Cost sharing or matching requirement"); cs != "" {
		yes := strings.HasPrefix(strings.ToLower(cs), "y")
		opp.IsCostSharing = &yes
	}

	if instrument := b.vocab.Find(text, "Funding instrument type"); instrument != "" {
		opp.FundingInstruments = []string{instrument}
	}

	setString(&opp.Category, b.vocab.Find(text, "Opportunity Category"))
	setString(&opp.CategoryExplanation, b.vocab.Find(text, "Opportunity Category Explanation"))

	if activity := b.vocab.Find(text, "Category of Funding Activity"); activity != "" {
		opp.FundingCategories = []string{activity}
	}

	if listings := b.vocab.Find(text, "Assistance Listings"); listings != "" {
		opp.OpportunityAssistanceListings = extract.ListingCodes(listings)
	}

	links := extract.ClassifyLinks(page.Hrefs())
	if url, kind := links.Primary(); url != "" {
		opp.AdditionalInfoURL = &url
		opp.AdditionalInfoURLDescription = &kind
	}

	opp.Tags = tags.Apply(b.rules, opp)

	return opp
}

// findFirst returns the first label in the fallback chain that yields a
// value.
func (b *Builder) findFirst(text string, labels ...string) string {
	for _, label := range labels {
		if v := b.vocab.Find(text, label); v != "" {
			return v
		}
	}
	return ""
}

func setString(dst **string, value string) {
	if value != "" {
		*dst = &value
	}
}

// Result is the outcome of one batch ingest.
type Result struct {
	URL         string
	Opportunity *opportunity.Opportunity
	Err         error
}

// Fetcher fetches and parses one page; satisfied by *scraper.Scraper.
type Fetcher interface {
	FetchPage(url string) (*scraper.Page, error)
}

// RunBatch ingests every URL on a bounded worker pool and returns one
// Result per URL, in input order. Pages are independent, so workers share
// nothing but the Builder's read-only tables.
func (b *Builder) RunBatch(urls []string, workers int, fetcher Fetcher) []Result {
	if workers < 1 {
		workers = 1
	}
	if workers > len(urls) {
		workers = len(urls)
	}

	type job struct {
		index int
		url   string
	}

	jobs := make(chan job, len(urls))
	results := make([]Result, len(urls))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				page, err := fetcher.FetchPage(j.url)
				if err != nil {
					results[j.index] = Result{URL: j.url, Err: err}
					continue
				}
				results[j.index] = Result{URL: j.url, Opportunity: b.Build(page)}
			}
		}()
	}

	for i, url := range urls {
		jobs <- job{index: i, url: url}
	}
	close(jobs)
	wg.Wait()

	return results
}
