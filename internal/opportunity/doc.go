// Package opportunity provides the normalized record type for a single
// funding opportunity announcement.
//
// The opportunity package defines the Opportunity struct with its full set
// of optional fields, creation with UTC timestamps, and pruning of empty
// fields before emission. Every field is optional: a populated field always
// holds a non-empty, whitespace-normalized value, and anything else is
// dropped at output time.
package opportunity
