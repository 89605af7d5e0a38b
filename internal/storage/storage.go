package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/opportunity"
)

const (
	jsonFileName = "foa.json"
	csvFileName  = "foa.csv"
)

// Storage writes opportunity records into a single output directory.
type Storage struct {
	outDir string
}

// New creates a Storage rooted at outDir, creating the directory if needed.
// A leading ~/ is expanded to the user's home directory.
func New(outDir string) (*Storage, error) {
	if strings.HasPrefix(outDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		outDir = filepath.Join(home, outDir[2:])
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{outDir: outDir}, nil
}

// Dir returns the resolved output directory.
func (s *Storage) Dir() string {
	return s.outDir
}

// WriteJSON writes the pruned record as indented JSON and returns the file
// path.
func (s *Storage) WriteJSON(opp *opportunity.Opportunity) (string, error) {
	data, err := json.MarshalIndent(opp.Prune(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	path := filepath.Join(s.outDir, jsonFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing record: %w", err)
	}
	return path, nil
}

// WriteCSV writes the record as a header row plus one value row covering
// every defined field, and returns the file path.
func (s *Storage) WriteCSV(opp *opportunity.Opportunity) (string, error) {
	path := filepath.Join(s.outDir, csvFileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(opportunity.FieldOrder()); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.Write(opp.Row()); err != nil {
		return "", fmt.Errorf("writing csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return path, nil
}
