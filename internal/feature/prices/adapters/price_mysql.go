package adapters

import (
	"context"

	"gold_digger/internal/feature/prices/usecase"
	"gold_digger/internal/platform/db"
	"gold_digger/internal/shared/record"
)

// PricesTable is the table price bars are written to.
const PricesTable = "stock_prices"

type priceMySQL struct {
	store *db.Store
}

var _ usecase.PriceRepository = (*priceMySQL)(nil)

func NewPriceRepository(store *db.Store) *priceMySQL {
	return &priceMySQL{store: store}
}

// UpsertBatch writes all bars in one statement batch; an empty slice is a no-op.
func (r *priceMySQL) UpsertBatch(ctx context.Context, recs []record.Record) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	return r.store.Upsert(ctx, PricesTable, recs, usecase.NaturalKey)
}
