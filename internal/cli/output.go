package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/opportunity"
)

// OutputFormat specifies the summary output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IngestResult summarizes one ingested page.
type IngestResult struct {
	IngestedAt    time.Time `json:"ingested_at"`
	SourceURL     string    `json:"source_url"`
	OpportunityID string    `json:"opportunity_id,omitempty"`
	Title         string    `json:"title,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	FieldCount    int       `json:"field_count"`
	Files         []string  `json:"files"`
}

// BatchRun summarizes a batch ingest.
type BatchRun struct {
	RunID      string            `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	Total      int               `json:"total"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	Results    []IngestResult    `json:"results,omitempty"`
	FailedURLs map[string]string `json:"failed_urls,omitempty"`
}

// NewBatchRun creates a BatchRun with a fresh run id.
func NewBatchRun(urls []string) *BatchRun {
	return &BatchRun{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Total:     len(urls),
	}
}

// AddSuccess records one successfully ingested page.
func (r *BatchRun) AddSuccess(result IngestResult) {
	r.Succeeded++
	r.Results = append(r.Results, result)
}

// AddFailure records one failed page.
func (r *BatchRun) AddFailure(url string, err error) {
	r.Failed++
	if r.FailedURLs == nil {
		r.FailedURLs = make(map[string]string)
	}
	r.FailedURLs[url] = err.Error()
}

// newIngestResult builds the summary for one record.
func newIngestResult(url string, opp *opportunity.Opportunity, files []string) *IngestResult {
	result := &IngestResult{
		IngestedAt: time.Now().UTC(),
		SourceURL:  url,
		Tags:       opp.Tags,
		FieldCount: len(opp.Prune()),
		Files:      files,
	}
	if opp.OpportunityID != nil {
		result.OpportunityID = *opp.OpportunityID
	}
	if opp.OpportunityTitle != nil {
		result.Title = *opp.OpportunityTitle
	}
	return result
}

// WriteOutput writes a single-page summary in the specified format
func WriteOutput(w io.Writer, result *IngestResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteBatchOutput writes a batch summary in the specified format
func WriteBatchOutput(w io.Writer, run *BatchRun, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, run)
	case FormatText:
		return writeBatchText(w, run, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs any summary as JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText outputs a single-page summary as human-readable text
func writeText(w io.Writer, result *IngestResult, verbose bool) error {
	if result.Title != "" {
		fmt.Fprintf(w, "Ingested: %s\n", result.Title)
	} else {
		fmt.Fprintf(w, "Ingested: %s\n", result.SourceURL)
	}
	if result.OpportunityID != "" {
		fmt.Fprintf(w, "  ID: %s\n", result.OpportunityID)
	}
	fmt.Fprintf(w, "  Fields: %d\n", result.FieldCount)
	if len(result.Tags) > 0 {
		fmt.Fprintf(w, "  Tags: %s\n", strings.Join(result.Tags, ", "))
	}
	for _, path := range result.Files {
		fmt.Fprintf(w, "Wrote: %s\n", path)
	}
	if verbose {
		fmt.Fprintf(w, "  Source: %s\n", result.SourceURL)
	}
	return nil
}

// writeBatchText outputs a batch summary as human-readable text
func writeBatchText(w io.Writer, run *BatchRun, verbose bool) error {
	for _, result := range run.Results {
		if err := writeText(w, &result, verbose); err != nil {
			return err
		}
	}

	if len(run.FailedURLs) > 0 {
		fmt.Fprintln(w, "\nFailed:")
		for url, msg := range run.FailedURLs {
			fmt.Fprintf(w, "  %s: %s\n", url, msg)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d pages, %d succeeded, %d failed (run %s)\n",
		run.Total, run.Succeeded, run.Failed, run.RunID)
	return nil
}
