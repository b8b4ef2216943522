// Package usecase scrapes option chains into the put_options and call_options tables.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"gold_digger/internal/feature/options/domain/entity"
	"gold_digger/internal/shared/fieldmap"
	"gold_digger/internal/shared/ingest"
	"gold_digger/internal/shared/record"
)

// ErrNoRepository is returned when persistence is requested without a database.
var ErrNoRepository = errors.New("options: no database configured")

// OptionUsecase scrapes option chains.
type OptionUsecase struct {
	provider ChainProvider
	repo     OptionRepository
	mapper   fieldmap.Mapper
	now      func() time.Time
}

// NewOptionUsecase creates an OptionUsecase. repo may be nil for dry runs.
func NewOptionUsecase(provider ChainProvider, repo OptionRepository) *OptionUsecase {
	return &OptionUsecase{provider: provider, repo: repo, mapper: fieldmap.OptionFields, now: time.Now}
}

// ScrapeTicker stores every listed expiration of ticker, or only date when it
// is set, for class or for both classes when class is nil. Each
// (expiration, class) pair is its own upsert. A ticker without options, or a
// requested date that is not listed, is logged and yields an empty result.
func (u *OptionUsecase) ScrapeTicker(ctx context.Context, ticker string, class *entity.OptionClass, date string, dryRun bool) (entity.Scrape, error) {
	out, err := u.scrape(ctx, ticker, class, date, dryRun)
	if errors.Is(err, record.ErrNoData) {
		return out, nil
	}
	return out, err
}

// ScrapeTickers runs ScrapeTicker for each ticker; failures are logged and skipped.
func (u *OptionUsecase) ScrapeTickers(ctx context.Context, tickers []string, class *entity.OptionClass, date string, dryRun bool) []ingest.Result {
	results := make([]ingest.Result, 0, len(tickers))
	for _, t := range tickers {
		t = record.NormalizeTicker(t)
		out, err := u.scrape(ctx, t, class, date, dryRun)
		if err != nil && !errors.Is(err, record.ErrNoData) {
			log.Error().Err(err).Str("ticker", t).Str("entity", string(ingest.EntityOptions)).Msg("failed to scrape options")
		}
		res := ingest.NewResult(ingest.EntityOptions, t, out.Rows(), dryRun, err)
		res.Detail = out
		results = append(results, res)
	}
	return results
}

func (u *OptionUsecase) scrape(ctx context.Context, ticker string, class *entity.OptionClass, date string, dryRun bool) (entity.Scrape, error) {
	ticker = record.NormalizeTicker(ticker)
	out := entity.Scrape{Ticker: ticker}

	classes := entity.AllClasses
	if class != nil {
		if !class.Valid() {
			return out, fmt.Errorf("%w: %q", record.ErrInvalidOptionClass, *class)
		}
		classes = []entity.OptionClass{*class}
	}
	if date != "" {
		if _, err := record.ParseDate(date); err != nil {
			return out, fmt.Errorf("option date %q: %w", date, err)
		}
	}
	if u.repo == nil && !dryRun {
		return out, ErrNoRepository
	}

	dates, err := u.provider.OptionDates(ctx, ticker)
	if errors.Is(err, record.ErrNoData) || (err == nil && len(dates) == 0) {
		log.Warn().Str("ticker", ticker).Msg("no option expirations listed")
		return out, fmt.Errorf("options %s: %w", ticker, record.ErrNoData)
	}
	if err != nil {
		return out, fmt.Errorf("fetch option dates %s: %w", ticker, err)
	}
	if date != "" {
		if !slices.Contains(dates, date) {
			log.Warn().Str("ticker", ticker).Str("date", date).Strs("available", dates).Msg("requested expiration not listed")
			return out, fmt.Errorf("options %s %s: %w", ticker, date, record.ErrNoData)
		}
		dates = []string{date}
	}

	createdAt, err := record.ParseDate(u.now())
	if err != nil {
		return out, err
	}

	for _, d := range dates {
		expiration, err := record.ParseDate(d)
		if err != nil {
			return out, fmt.Errorf("option date %q: %w", d, err)
		}
		for _, c := range classes {
			chain, err := u.scrapeChain(ctx, ticker, c, d, expiration, createdAt, dryRun)
			out.Chains = append(out.Chains, chain)
			if err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

func (u *OptionUsecase) scrapeChain(ctx context.Context, ticker string, class entity.OptionClass, date string, expiration, createdAt time.Time, dryRun bool) (entity.Chain, error) {
	chain := entity.Chain{Expiration: date, Class: class}

	contracts, err := u.provider.Options(ctx, ticker, date, string(class))
	if err != nil && !errors.Is(err, record.ErrNoData) {
		return chain, fmt.Errorf("fetch %s %s %s: %w", ticker, class, date, err)
	}
	if contracts.Empty() {
		log.Warn().Str("ticker", ticker).Str("class", string(class)).Str("date", date).Msg("no option contracts returned")
		return chain, nil
	}
	chain.Contracts = contracts

	if u.repo == nil {
		log.Info().Str("ticker", ticker).Str("class", string(class)).Str("date", date).Msg("dry run without database, schema not consulted")
		return chain, nil
	}

	recs, err := Normalize(contracts, u.repo.Columns(ctx, class), u.mapper, ticker, class, expiration, createdAt)
	if err != nil {
		return chain, fmt.Errorf("normalize %s %s %s: %w", ticker, class, date, err)
	}
	chain.Records = recs

	if dryRun {
		log.Info().Str("ticker", ticker).Str("class", string(class)).Str("date", date).Int("rows", len(recs)).Msg("dry run, options not saved")
		return chain, nil
	}

	rows, err := u.repo.Upsert(ctx, class, recs)
	if err != nil {
		return chain, fmt.Errorf("upsert %s %s %s: %w", ticker, class, date, err)
	}
	chain.Rows = rows
	log.Info().Str("ticker", ticker).Str("class", string(class)).Str("date", date).Int("rows", len(recs)).Msg("options upserted")
	return chain, nil
}
