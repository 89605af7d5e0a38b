package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/config"
	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/ingest"
	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/opportunity"
	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/scraper"
	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagURL     string
	flagOutDir  string
	flagFormat  string
	flagConfig  string
	flagSummary string
	flagVerbose bool

	flagURLsFile string
	flagWorkers  int
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foa-ingest",
		Short: "Ingest a funding opportunity page into a normalized record",
		Long: `Fetches a single funding opportunity announcement page, extracts and
normalizes its fields, derives topic tags, and writes the record as JSON
and/or CSV.`,
		RunE: runIngest,
	}

	cmd.PersistentFlags().StringVar(&flagOutDir, "out-dir", "", "Output directory (default from config)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Record file format: json, csv, or both (default from config)")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flagSummary, "summary", "text", "Summary format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagURL, "url", "", "Funding opportunity URL (required)")
	cmd.MarkFlagRequired("url")

	cmd.AddCommand(newBatchCmd())

	return cmd
}

// newBatchCmd creates the batch subcommand.
func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Ingest a list of funding opportunity URLs",
		Long: `Reads one URL per line from a file and ingests each page on a bounded
worker pool. Every page is an independent unit; records land in per-URL
subdirectories of the output directory.`,
		RunE: runBatch,
	}

	cmd.Flags().StringVar(&flagURLsFile, "urls-file", "", "File with one URL per line (required)")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent page ingests (default from config)")
	cmd.MarkFlagRequired("urls-file")

	return cmd
}

// setup resolves config, logging, and the shared scraper/builder pair.
func setup() (*config.Config, *scraper.Scraper, *ingest.Builder, error) {
	if flagVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if flagOutDir != "" {
		cfg.Output.Dir = flagOutDir
	}
	if flagFormat != "" {
		cfg.Output.Format = strings.ToLower(flagFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	sc := scraper.New(cfg.Timeout(), cfg.HTTP.UserAgent)
	builder := ingest.NewBuilder(cfg.Vocabulary(), cfg.Rules())
	return cfg, sc, builder, nil
}

// runIngest handles the single-URL root command.
func runIngest(cmd *cobra.Command, args []string) error {
	summary, err := summaryFormat(flagSummary)
	if err != nil {
		return err
	}

	cfg, sc, builder, err := setup()
	if err != nil {
		return err
	}

	log.Debug().Str("url", flagURL).Str("out_dir", cfg.Output.Dir).Msg("ingesting page")

	page, err := sc.FetchPage(flagURL)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", flagURL, err)
	}

	opp := builder.Build(page)

	files, err := writeRecord(opp, cfg.Output.Dir, cfg.Output.Format)
	if err != nil {
		return err
	}

	result := newIngestResult(flagURL, opp, files)
	return WriteOutput(os.Stdout, result, summary, flagVerbose)
}

// runBatch handles the batch subcommand.
func runBatch(cmd *cobra.Command, args []string) error {
	summary, err := summaryFormat(flagSummary)
	if err != nil {
		return err
	}

	cfg, sc, builder, err := setup()
	if err != nil {
		return err
	}
	if flagWorkers > 0 {
		cfg.Batch.Workers = flagWorkers
	}

	urls, err := readURLs(flagURLsFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", flagURLsFile)
	}

	run := NewBatchRun(urls)
	log.Info().Str("run_id", run.RunID).Int("urls", len(urls)).
		Int("workers", cfg.Batch.Workers).Msg("starting batch ingest")

	results := builder.RunBatch(urls, cfg.Batch.Workers, sc)

	for i, res := range results {
		if res.Err != nil {
			log.Warn().Err(res.Err).Str("url", res.URL).Msg("ingest failed; skipping page")
			run.AddFailure(res.URL, res.Err)
			continue
		}

		dir := recordDir(cfg.Output.Dir, res.Opportunity, i)
		files, err := writeRecord(res.Opportunity, dir, cfg.Output.Format)
		if err != nil {
			log.Warn().Err(err).Str("url", res.URL).Msg("writing record failed")
			run.AddFailure(res.URL, err)
			continue
		}
		run.AddSuccess(*newIngestResult(res.URL, res.Opportunity, files))
	}

	return WriteBatchOutput(os.Stdout, run, summary, flagVerbose)
}

// writeRecord writes the record in the configured format(s) and returns the
// file paths.
func writeRecord(opp *opportunity.Opportunity, dir, format string) ([]string, error) {
	store, err := storage.New(dir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	var files []string
	if format == "json" || format == "both" {
		path, err := store.WriteJSON(opp)
		if err != nil {
			return nil, fmt.Errorf("writing JSON: %w", err)
		}
		files = append(files, path)
	}
	if format == "csv" || format == "both" {
		path, err := store.WriteCSV(opp)
		if err != nil {
			return nil, fmt.Errorf("writing CSV: %w", err)
		}
		files = append(files, path)
	}
	return files, nil
}

// recordDir picks the per-URL output subdirectory for batch mode: the
// opportunity id when one was extracted, otherwise the page's input index.
func recordDir(base string, opp *opportunity.Opportunity, index int) string {
	name := fmt.Sprintf("page-%03d", index+1)
	if opp.OpportunityID != nil && *opp.OpportunityID != "" {
		name = *opp.OpportunityID
	}
	return filepath.Join(base, name)
}

// readURLs reads one URL per line, skipping blanks and #-comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening urls file: %w", err)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading urls file: %w", err)
	}
	return urls, nil
}

// summaryFormat validates the --summary flag.
func summaryFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(s))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid summary format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// Execute runs the CLI.
func Execute() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
