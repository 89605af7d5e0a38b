package opportunity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Opportunity represents a single funding opportunity announcement.
// All fields are optional; pointer fields distinguish "absent" from the
// zero value (an explicit false cost-sharing flag survives pruning, an
// absent one does not).
type Opportunity struct {
	OpportunityID                  *string  `json:"opportunity_id,omitempty"`
	OpportunityNumber              *string  `json:"opportunity_number,omitempty"`
	OpportunityTitle               *string  `json:"opportunity_title,omitempty"`
	OpportunityStatus              *string  `json:"opportunity_status,omitempty"`
	AgencyCode                     *string  `json:"agency_code,omitempty"`
	Category                       *string  `json:"category,omitempty"`
	CategoryExplanation            *string  `json:"category_explanation,omitempty"`
	PostDate                       *string  `json:"post_date,omitempty"`
	CloseDate                      *string  `json:"close_date,omitempty"`
	CloseDateDescription           *string  `json:"close_date_description,omitempty"`
	ArchiveDate                    *string  `json:"archive_date,omitempty"`
	IsCostSharing                  *bool    `json:"is_cost_sharing,omitempty"`
	ExpectedNumberOfAwards         *int     `json:"expected_number_of_awards,omitempty"`
	EstimatedTotalProgramFunding   *int     `json:"estimated_total_program_funding,omitempty"`
	AwardFloor                     *int     `json:"award_floor,omitempty"`
	AwardCeiling                   *int     `json:"award_ceiling,omitempty"`
	AdditionalInfoURL              *string  `json:"additional_info_url,omitempty"`
	AdditionalInfoURLDescription   *string  `json:"additional_info_url_description,omitempty"`
	OpportunityAssistanceListings  []string `json:"opportunity_assistance_listings,omitempty"`
	FundingInstruments             []string `json:"funding_instruments,omitempty"`
	FundingCategories              []string `json:"funding_categories,omitempty"`
	FundingCategoryDescription     *string  `json:"funding_category_description,omitempty"`
	ApplicantTypes                 []string `json:"applicant_types,omitempty"`
	ApplicantEligibilityDesc       *string  `json:"applicant_eligibility_description,omitempty"`
	AgencyName                     *string  `json:"agency_name,omitempty"`
	TopLevelAgencyName             *string  `json:"top_level_agency_name,omitempty"`
	AgencyContactDescription       *string  `json:"agency_contact_description,omitempty"`
	AgencyEmailAddress             *string  `json:"agency_email_address,omitempty"`
	AgencyEmailAddressDescription  *string  `json:"agency_email_address_description,omitempty"`
	IsForecast                     *bool    `json:"is_forecast,omitempty"`
	ForecastedPostDate             *string  `json:"forecasted_post_date,omitempty"`
	ForecastedCloseDate            *string  `json:"forecasted_close_date,omitempty"`
	ForecastedCloseDateDescription *string  `json:"forecasted_close_date_description,omitempty"`
	ForecastedAwardDate            *string  `json:"forecasted_award_date,omitempty"`
	ForecastedProjectStartDate     *string  `json:"forecasted_project_start_date,omitempty"`
	FiscalYear                     *int     `json:"fiscal_year,omitempty"`
	CreatedAt                      *string  `json:"created_at,omitempty"`
	UpdatedAt                      *string  `json:"updated_at,omitempty"`
	SummaryDescription             *string  `json:"summary_description,omitempty"`
	Tags                           []string `json:"tags,omitempty"`
}

// fieldOrder is the fixed, fully-enumerated field order used for
// row-oriented output. Every defined field appears here even when absent
// from a given record.
var fieldOrder = []string{
	"opportunity_id",
	"opportunity_number",
	"opportunity_title",
	"opportunity_status",
	"agency_code",
	"category",
	"category_explanation",
	"post_date",
	"close_date",
	"close_date_description",
	"archive_date",
	"is_cost_sharing",
	"expected_number_of_awards",
	"estimated_total_program_funding",
	"award_floor",
	"award_ceiling",
	"additional_info_url",
	"additional_info_url_description",
	"opportunity_assistance_listings",
	"funding_instruments",
	"funding_categories",
	"funding_category_description",
	"applicant_types",
	"applicant_eligibility_description",
	"agency_name",
	"top_level_agency_name",
	"agency_contact_description",
	"agency_email_address",
	"agency_email_address_description",
	"is_forecast",
	"forecasted_post_date",
	"forecasted_close_date",
	"forecasted_close_date_description",
	"forecasted_award_date",
	"forecasted_project_start_date",
	"fiscal_year",
	"created_at",
	"updated_at",
	"summary_description",
	"tags",
}

// FieldOrder returns the fixed field order for row-oriented output.
// The returned slice is a copy.
func FieldOrder() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// New creates an Opportunity with its identifier, title, and creation
// timestamps populated. Empty id or title stay absent.
func New(id, title string) *Opportunity {
	now := time.Now().UTC().Format(time.RFC3339)
	o := &Opportunity{
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	if id != "" {
		o.OpportunityID = &id
	}
	if title != "" {
		o.OpportunityTitle = &title
	}
	return o
}

// Prune returns the record as a keyed map with every absent, empty-string,
// or empty-list field removed. Pruning is idempotent: pruning the result
// again yields the same map.
func (o *Opportunity) Prune() map[string]any {
	raw, err := json.Marshal(o)
	if err != nil {
		// The struct contains only marshalable field types.
		return map[string]any{}
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return map[string]any{}
	}

	for name, value := range fields {
		switch v := value.(type) {
		case nil:
			delete(fields, name)
		case string:
			if v == "" {
				delete(fields, name)
			}
		case []any:
			if len(v) == 0 {
				delete(fields, name)
			}
		}
	}

	return fields
}

// Row flattens the pruned record into one CSV value per field in
// FieldOrder. Absent fields yield empty cells; list fields are joined
// with "|". The join is lossy and one-way.
func (o *Opportunity) Row() []string {
	fields := o.Prune()

	row := make([]string, 0, len(fieldOrder))
	for _, name := range fieldOrder {
		value, ok := fields[name]
		if !ok {
			row = append(row, "")
			continue
		}
		row = append(row, cell(value))
	}
	return row
}

// cell renders a single pruned value for row output.
func cell(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		// encoding/json decodes all numbers as float64; the record only
		// ever holds integers.
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, "|")
	default:
		return fmt.Sprintf("%v", v)
	}
}
