// Package entity defines the domain models for the companies feature.
package entity

import "gold_digger/internal/shared/record"

// Company is the outcome of fetching and normalising one ticker's profile.
type Company struct {
	Ticker string
	Raw    map[string]any // provider payload, Yahoo field names
	Record record.Record  // normalised row; nil when no schema was available
	Rows   int64          // rows affected by the upsert
}
