package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abdelrhman2Fawzy/grants-gov-foa-ingestor/internal/opportunity"
)

func sampleRecord() *opportunity.Opportunity {
	opp := opportunity.New("358204", "Climate Resilience Research Grants")
	agency := "National Science Foundation"
	closeDate := "2025-08-01"
	costSharing := true
	opp.AgencyName = &agency
	opp.CloseDate = &closeDate
	opp.IsCostSharing = &costSharing
	opp.OpportunityAssistanceListings = []string{"47.041", "47.050"}
	opp.Tags = []string{"climate_environment", "has_deadline", "cost_sharing"}
	return opp
}

func TestWriteJSON(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := store.WriteJSON(sampleRecord())
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if filepath.Base(path) != "foa.json" {
		t.Errorf("unexpected file name %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if fields["opportunity_id"] != "358204" {
		t.Errorf("opportunity_id = %v", fields["opportunity_id"])
	}
	if fields["is_cost_sharing"] != true {
		t.Errorf("is_cost_sharing = %v", fields["is_cost_sharing"])
	}
	// Absent fields must not appear at all.
	if _, ok := fields["summary_description"]; ok {
		t.Error("absent field summary_description should not be emitted")
	}
	if _, ok := fields["funding_instruments"]; ok {
		t.Error("empty list should not be emitted")
	}
}

func TestWriteCSV(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := store.WriteCSV(sampleRecord())
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}

	header, row := rows[0], rows[1]
	order := opportunity.FieldOrder()
	if len(header) != len(order) {
		t.Fatalf("header has %d columns, expected %d", len(header), len(order))
	}
	for i, name := range order {
		if header[i] != name {
			t.Fatalf("header[%d] = %q, expected %q", i, header[i], name)
		}
	}

	cells := make(map[string]string, len(header))
	for i, name := range header {
		cells[name] = row[i]
	}
	if cells["opportunity_assistance_listings"] != "47.041|47.050" {
		t.Errorf("listings cell = %q", cells["opportunity_assistance_listings"])
	}
	if cells["tags"] != "climate_environment|has_deadline|cost_sharing" {
		t.Errorf("tags cell = %q", cells["tags"])
	}
	if cells["archive_date"] != "" {
		t.Errorf("absent field should be an empty cell, got %q", cells["archive_date"])
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	store, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("Dir() = %q, expected %q", store.Dir(), dir)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("output directory was not created: %v", err)
	}
}
