// Package usecase fetches daily price bars and upserts them into stock_prices.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"gold_digger/internal/feature/prices/domain/entity"
	"gold_digger/internal/shared/ingest"
	"gold_digger/internal/shared/record"
)

const (
	defaultPeriod   = "5d"
	defaultInterval = "1d"
)

var (
	// ErrNoRepository is returned when persistence is requested without a database.
	ErrNoRepository = errors.New("prices: no database configured")

	// ErrIntradayInterval is returned for bar intervals finer than one day.
	// stock_prices holds one row per ticker and date.
	ErrIntradayInterval = fmt.Errorf("%w: interval must be daily or coarser", record.ErrValidation)
)

var dailyIntervals = map[string]bool{"1d": true, "5d": true, "1wk": true, "1mo": true, "3mo": true}

// PriceUsecase adds price history.
type PriceUsecase struct {
	provider HistoryProvider
	repo     PriceRepository
}

// NewPriceUsecase creates a PriceUsecase. repo may be nil for dry runs.
func NewPriceUsecase(provider HistoryProvider, repo PriceRepository) *PriceUsecase {
	return &PriceUsecase{provider: provider, repo: repo}
}

// AddHistory fetches bars for ticker, normalises them and upserts them in one
// batch. An empty history is logged and returns without error.
func (u *PriceUsecase) AddHistory(ctx context.Context, ticker string, q entity.HistoryQuery, dryRun bool) (entity.History, error) {
	out, err := u.addHistory(ctx, ticker, q, dryRun)
	if errors.Is(err, record.ErrNoData) {
		return out, nil
	}
	return out, err
}

// AddHistoryMany runs AddHistory for each ticker; failures are logged and skipped.
func (u *PriceUsecase) AddHistoryMany(ctx context.Context, tickers []string, q entity.HistoryQuery, dryRun bool) []ingest.Result {
	results := make([]ingest.Result, 0, len(tickers))
	for _, t := range tickers {
		t = record.NormalizeTicker(t)
		out, err := u.addHistory(ctx, t, q, dryRun)
		if err != nil && !errors.Is(err, record.ErrNoData) {
			log.Error().Err(err).Str("ticker", t).Str("entity", string(ingest.EntityPrices)).Msg("failed to add price history")
		}
		res := ingest.NewResult(ingest.EntityPrices, t, out.Rows, dryRun, err)
		res.Detail = out
		results = append(results, res)
	}
	return results
}

func (u *PriceUsecase) addHistory(ctx context.Context, ticker string, q entity.HistoryQuery, dryRun bool) (entity.History, error) {
	ticker = record.NormalizeTicker(ticker)
	out := entity.History{Ticker: ticker}
	if q.Start.IsZero() && q.Period == "" {
		q.Period = defaultPeriod
	}
	if q.Interval == "" {
		q.Interval = defaultInterval
	}
	if !dailyIntervals[q.Interval] {
		return out, fmt.Errorf("%w: %q", ErrIntradayInterval, q.Interval)
	}
	if u.repo == nil && !dryRun {
		return out, ErrNoRepository
	}

	bars, err := u.provider.HistoricalData(ctx, ticker, q.Period, q.Start, q.End, q.Interval)
	if errors.Is(err, record.ErrNoData) || (err == nil && bars.Empty()) {
		log.Warn().Str("ticker", ticker).Str("period", q.Period).Msg("no price data returned")
		return out, fmt.Errorf("prices %s: %w", ticker, record.ErrNoData)
	}
	if err != nil {
		return out, fmt.Errorf("fetch prices %s: %w", ticker, err)
	}
	out.Bars = bars

	recs, err := Normalize(bars, ticker)
	if err != nil {
		return out, fmt.Errorf("normalize prices %s: %w", ticker, err)
	}
	out.Records = recs

	if dryRun {
		log.Info().Str("ticker", ticker).Int("rows", len(recs)).Msg("dry run, prices not saved")
		return out, nil
	}

	rows, err := u.repo.UpsertBatch(ctx, recs)
	if err != nil {
		return out, fmt.Errorf("upsert prices %s: %w", ticker, err)
	}
	out.Rows = rows
	log.Info().Str("ticker", ticker).Int("rows", len(recs)).Msg("prices upserted")
	return out, nil
}
