// Package entity defines the domain models for the prices feature.
package entity

import (
	"time"

	"gold_digger/internal/shared/record"
)

// HistoryQuery selects the bars to fetch. Start and End take precedence over
// Period when Start is set.
type HistoryQuery struct {
	Period   string // e.g. "5d", "1mo", "1y"
	Start    time.Time
	End      time.Time
	Interval string // e.g. "1d"
}

// History is the outcome of fetching and normalising one ticker's bars.
type History struct {
	Ticker  string
	Bars    record.Table    // provider table
	Records []record.Record // normalised stock_prices rows
	Rows    int64
}
