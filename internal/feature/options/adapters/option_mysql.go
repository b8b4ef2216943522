package adapters

import (
	"context"

	"gold_digger/internal/feature/options/domain/entity"
	"gold_digger/internal/feature/options/usecase"
	"gold_digger/internal/platform/db"
	"gold_digger/internal/shared/record"
)

type optionMySQL struct {
	store *db.Store
}

var _ usecase.OptionRepository = (*optionMySQL)(nil)

func NewOptionRepository(store *db.Store) *optionMySQL {
	return &optionMySQL{store: store}
}

func (r *optionMySQL) Columns(ctx context.Context, class entity.OptionClass) record.ColumnSet {
	return r.store.TableColumns(ctx, class.Table())
}

func (r *optionMySQL) Upsert(ctx context.Context, class entity.OptionClass, recs []record.Record) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	return r.store.Upsert(ctx, class.Table(), recs, usecase.NaturalKey)
}
