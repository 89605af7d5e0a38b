package opportunity

import (
	"reflect"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

func TestNew(t *testing.T) {
	opp := New("358204", "Community Health Research")

	if opp.OpportunityID == nil || *opp.OpportunityID != "358204" {
		t.Errorf("expected opportunity id to be set")
	}
	if opp.OpportunityTitle == nil || *opp.OpportunityTitle != "Community Health Research" {
		t.Errorf("expected title to be set")
	}
	if opp.CreatedAt == nil || opp.UpdatedAt == nil {
		t.Fatal("expected creation timestamps to be set")
	}
	if _, err := time.Parse(time.RFC3339, *opp.CreatedAt); err != nil {
		t.Errorf("created_at is not RFC3339: %v", err)
	}
}

func TestNewEmptyIdentifiers(t *testing.T) {
	opp := New("", "")

	if opp.OpportunityID != nil {
		t.Errorf("expected absent id, got %q", *opp.OpportunityID)
	}
	if opp.OpportunityTitle != nil {
		t.Errorf("expected absent title, got %q", *opp.OpportunityTitle)
	}
}

func TestPruneDropsEmptyFields(t *testing.T) {
	opp := &Opportunity{
		OpportunityTitle:   strPtr(""),
		FundingInstruments: []string{},
		CloseDate:          strPtr("2025-08-01"),
	}

	fields := opp.Prune()

	if _, ok := fields["opportunity_title"]; ok {
		t.Error("empty title should be pruned")
	}
	if _, ok := fields["funding_instruments"]; ok {
		t.Error("empty list should be pruned")
	}
	if got, ok := fields["close_date"]; !ok || got != "2025-08-01" {
		t.Errorf("close_date = %v, expected 2025-08-01", got)
	}
	if len(fields) != 1 {
		t.Errorf("expected exactly 1 field, got %d: %v", len(fields), fields)
	}
}

func TestPruneKeepsExplicitFalse(t *testing.T) {
	opp := &Opportunity{IsCostSharing: boolPtr(false)}

	fields := opp.Prune()
	if got, ok := fields["is_cost_sharing"]; !ok || got != false {
		t.Errorf("explicit false flag must survive pruning, got %v", fields)
	}
}

func TestPruneIdempotent(t *testing.T) {
	opp := &Opportunity{
		OpportunityID:                 strPtr("358204"),
		OpportunityTitle:              strPtr(""),
		AgencyName:                    strPtr("NSF"),
		OpportunityAssistanceListings: []string{"47.041"},
		FundingCategories:             []string{},
		ExpectedNumberOfAwards:        intPtr(10),
		Tags:                          []string{"has_deadline"},
	}

	once := opp.Prune()

	// Re-pruning the pruned map must change nothing.
	twice := make(map[string]any, len(once))
	for k, v := range once {
		twice[k] = v
	}
	for name, value := range twice {
		switch v := value.(type) {
		case nil:
			delete(twice, name)
		case string:
			if v == "" {
				delete(twice, name)
			}
		case []any:
			if len(v) == 0 {
				delete(twice, name)
			}
		}
	}

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("pruning is not idempotent: %v vs %v", once, twice)
	}
}

func TestRow(t *testing.T) {
	opp := &Opportunity{
		OpportunityID:                 strPtr("358204"),
		OpportunityTitle:              strPtr("Community Health Research"),
		IsCostSharing:                 boolPtr(true),
		ExpectedNumberOfAwards:        intPtr(12),
		OpportunityAssistanceListings: []string{"47.041", "93.323"},
		Tags:                          []string{"health_biomed", "has_deadline"},
	}

	row := opp.Row()
	order := FieldOrder()

	if len(row) != len(order) {
		t.Fatalf("row has %d cells, expected %d", len(row), len(order))
	}

	cells := make(map[string]string, len(order))
	for i, name := range order {
		cells[name] = row[i]
	}

	if cells["opportunity_id"] != "358204" {
		t.Errorf("opportunity_id cell = %q", cells["opportunity_id"])
	}
	if cells["is_cost_sharing"] != "true" {
		t.Errorf("is_cost_sharing cell = %q", cells["is_cost_sharing"])
	}
	if cells["expected_number_of_awards"] != "12" {
		t.Errorf("expected_number_of_awards cell = %q", cells["expected_number_of_awards"])
	}
	if cells["opportunity_assistance_listings"] != "47.041|93.323" {
		t.Errorf("listings cell = %q", cells["opportunity_assistance_listings"])
	}
	if cells["tags"] != "health_biomed|has_deadline" {
		t.Errorf("tags cell = %q", cells["tags"])
	}
	if cells["close_date"] != "" {
		t.Errorf("absent close_date should be an empty cell, got %q", cells["close_date"])
	}
}

func TestFieldOrderCoversEveryField(t *testing.T) {
	order := FieldOrder()

	if len(order) != 40 {
		t.Fatalf("expected 40 fields, got %d", len(order))
	}
	if order[0] != "opportunity_id" {
		t.Errorf("first field = %q, expected opportunity_id", order[0])
	}
	if order[len(order)-1] != "tags" {
		t.Errorf("last field = %q, expected tags", order[len(order)-1])
	}

	// The returned slice is a copy; mutating it must not corrupt the order.
	order[0] = "mutated"
	if FieldOrder()[0] != "opportunity_id" {
		t.Error("FieldOrder must return a defensive copy")
	}
}
