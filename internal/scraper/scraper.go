package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/extract"
)

const (
	DefaultUserAgent = "foa-ingest/1.0 (github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor)"
	DefaultTimeout   = 30 * time.Second
)

// Anchor is one anchor element from the page: its href attribute and its
// visible text.
type Anchor struct {
	Href string
	Text string
}

// Page is the parsed form of one opportunity page.
type Page struct {
	SourceURL string
	Title     string
	Text      string
	Anchors   []Anchor
}

// Hrefs returns the href of every anchor on the page, in document order.
func (p *Page) Hrefs() []string {
	hrefs := make([]string, 0, len(p.Anchors))
	for _, a := range p.Anchors {
		hrefs = append(hrefs, a.Href)
	}
	return hrefs
}

// Scraper fetches and parses opportunity pages.
type Scraper struct {
	client    *http.Client
	userAgent string
}

// New creates a Scraper with the given timeout and user agent. Zero or
// empty arguments fall back to the package defaults.
func New(timeout time.Duration, userAgent string) *Scraper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Scraper{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FetchPage fetches one opportunity page and parses it.
func (s *Scraper) FetchPage(url string) (*Page, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return Parse(resp.Body, url)
}

// Parse reduces raw HTML to a Page. The title comes from the first h1,
// falling back to the document title; the text is every visible text node,
// whitespace-joined and collapsed.
func Parse(r io.Reader, sourceURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	// Script and style bodies are not visible text.
	doc.Find("script, style, noscript").Remove()

	page := &Page{
		SourceURL: sourceURL,
		Title:     extractTitle(doc),
		Text:      extract.CleanText(doc.Text()),
	}

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		page.Anchors = append(page.Anchors, Anchor{
			Href: strings.TrimSpace(href),
			Text: extract.CleanText(sel.Text()),
		})
	})

	return page, nil
}

// extractTitle prefers the first h1, then the document title.
func extractTitle(doc *goquery.Document) string {
	if t := extract.CleanText(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return extract.CleanText(doc.Find("title").First().Text())
}
