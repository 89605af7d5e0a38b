// Package extract implements the field-extraction and normalization engine
// for funding opportunity pages.
//
// The extract package turns the flattened page text into typed field values:
// whitespace normalization, closed-world "Label: value" scanning against a
// known label vocabulary, date normalization to ISO form, first-date-token
// scanning of free text, opportunity id extraction from source URLs, and
// classification of anchor targets into documents and external links.
// No function in this package returns an error: anything that cannot be
// extracted comes back as the empty value.
package extract
