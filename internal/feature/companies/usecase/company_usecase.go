// Package usecase fetches company profiles and upserts them into the companies table.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"gold_digger/internal/feature/companies/domain/entity"
	"gold_digger/internal/shared/fieldmap"
	"gold_digger/internal/shared/ingest"
	"gold_digger/internal/shared/record"
)

// CompanyUsecase adds company profiles.
type CompanyUsecase struct {
	provider InfoProvider
	repo     CompanyRepository
	mapper   fieldmap.Mapper
}

// NewCompanyUsecase creates a CompanyUsecase. repo may be nil for dry runs
// without a database; only raw data is produced then.
func NewCompanyUsecase(provider InfoProvider, repo CompanyRepository) *CompanyUsecase {
	return &CompanyUsecase{provider: provider, repo: repo, mapper: fieldmap.CompanyFields}
}

// Add fetches, normalises and upserts one ticker. A ticker the provider knows
// nothing about is logged and yields an empty result without error.
func (u *CompanyUsecase) Add(ctx context.Context, ticker string, dryRun bool) (entity.Company, error) {
	out, err := u.add(ctx, ticker, dryRun)
	if errors.Is(err, record.ErrNoData) {
		return out, nil
	}
	return out, err
}

// AddMany runs Add for every ticker in order. A failing ticker is logged and
// does not stop the others.
func (u *CompanyUsecase) AddMany(ctx context.Context, tickers []string, dryRun bool) []ingest.Result {
	results := make([]ingest.Result, 0, len(tickers))
	for _, t := range tickers {
		t = record.NormalizeTicker(t)
		out, err := u.add(ctx, t, dryRun)
		if err != nil && !errors.Is(err, record.ErrNoData) {
			log.Error().Err(err).Str("ticker", t).Str("entity", string(ingest.EntityCompany)).Msg("failed to add company")
		}
		res := ingest.NewResult(ingest.EntityCompany, t, out.Rows, dryRun, err)
		res.Detail = out
		results = append(results, res)
	}
	return results
}

func (u *CompanyUsecase) add(ctx context.Context, ticker string, dryRun bool) (entity.Company, error) {
	ticker = record.NormalizeTicker(ticker)
	out := entity.Company{Ticker: ticker}
	if u.repo == nil && !dryRun {
		return out, ErrNoRepository
	}

	info, err := u.provider.StockInfo(ctx, ticker)
	if errors.Is(err, record.ErrNoData) || (err == nil && len(info) == 0) {
		log.Warn().Str("ticker", ticker).Msg("no company data returned")
		return out, fmt.Errorf("company %s: %w", ticker, record.ErrNoData)
	}
	if err != nil {
		return out, fmt.Errorf("fetch company %s: %w", ticker, err)
	}
	out.Raw = info

	if u.repo == nil {
		log.Info().Str("ticker", ticker).Msg("dry run without database, schema not consulted")
		return out, nil
	}

	rec, err := Normalize(info, u.repo.Columns(ctx), u.mapper)
	if err != nil {
		return out, fmt.Errorf("normalize company %s: %w", ticker, err)
	}
	out.Record = rec

	if dryRun {
		log.Info().Str("ticker", ticker).Int("fields", len(rec)).Msg("dry run, company not saved")
		return out, nil
	}

	rows, err := u.repo.Upsert(ctx, rec)
	if err != nil {
		return out, fmt.Errorf("upsert company %s: %w", ticker, err)
	}
	out.Rows = rows
	log.Info().Str("ticker", ticker).Int("fields", len(rec)).Msg("company upserted")
	return out, nil
}
