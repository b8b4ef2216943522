package adapters

import (
	"context"

	"gold_digger/internal/feature/companies/usecase"
	"gold_digger/internal/platform/db"
	"gold_digger/internal/shared/record"
)

// CompaniesTable is the table company rows are written to.
const CompaniesTable = "companies"

type companyMySQL struct {
	store *db.Store
}

var _ usecase.CompanyRepository = (*companyMySQL)(nil)

func NewCompanyRepository(store *db.Store) *companyMySQL {
	return &companyMySQL{store: store}
}

func (r *companyMySQL) Columns(ctx context.Context) record.ColumnSet {
	return r.store.TableColumns(ctx, CompaniesTable)
}

func (r *companyMySQL) Upsert(ctx context.Context, rec record.Record) (int64, error) {
	return r.store.UpsertOne(ctx, CompaniesTable, rec, []string{usecase.NaturalKey})
}
