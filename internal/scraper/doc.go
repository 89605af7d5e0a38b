// Package scraper provides HTTP fetching and HTML parsing for funding
// opportunity pages.
//
// The scraper package fetches a single opportunity page and reduces it to
// the three inputs the extraction engine consumes: the page title, the
// flattened whitespace-joined text of all visible text nodes, and the list
// of anchor elements. Network and markup failures surface here as errors;
// everything downstream is best-effort and error-free.
package scraper
