// Package cli implements the command-line interface for foa-ingest.
//
// The cli package provides the Cobra-based CLI for ingesting a single
// funding opportunity URL or a batch of URLs, writing the normalized
// records as JSON and/or CSV, and printing an ingest summary in text or
// JSON. It coordinates the scraper, ingest, and storage packages.
package cli
