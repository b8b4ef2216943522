package usecase

import (
	"context"

	"gold_digger/internal/shared/record"
)

// InfoProvider fetches a company's profile as a flat field map.
// Interfaces live with their consumer; the Yahoo client satisfies this one.
type InfoProvider interface {
	StockInfo(ctx context.Context, ticker string) (map[string]any, error)
}

// CompanyRepository persists normalised company rows keyed by symbol.
type CompanyRepository interface {
	// Columns returns the live column set of the companies table.
	Columns(ctx context.Context) record.ColumnSet
	Upsert(ctx context.Context, rec record.Record) (int64, error)
}
