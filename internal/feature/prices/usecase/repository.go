package usecase

import (
	"context"
	"time"

	"gold_digger/internal/shared/record"
)

// HistoryProvider fetches OHLCV bars indexed by date.
type HistoryProvider interface {
	HistoricalData(ctx context.Context, ticker, period string, start, end time.Time, interval string) (record.Table, error)
}

// PriceRepository persists normalised price bars keyed by (date, ticker).
type PriceRepository interface {
	UpsertBatch(ctx context.Context, recs []record.Record) (int64, error)
}
