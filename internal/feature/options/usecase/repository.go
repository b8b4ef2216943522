package usecase

import (
	"context"

	"gold_digger/internal/feature/options/domain/entity"
	"gold_digger/internal/shared/record"
)

// ChainProvider lists expirations and fetches one side of an option chain.
type ChainProvider interface {
	OptionDates(ctx context.Context, ticker string) ([]string, error)
	Options(ctx context.Context, ticker, date, side string) (record.Table, error)
}

// OptionRepository persists normalised contracts into the table of their class.
type OptionRepository interface {
	Columns(ctx context.Context, class entity.OptionClass) record.ColumnSet
	Upsert(ctx context.Context, class entity.OptionClass, recs []record.Record) (int64, error)
}
