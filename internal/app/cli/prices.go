package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gold_digger/internal/feature/prices/domain/entity"
	"gold_digger/internal/shared/record"
)

type priceFlags struct {
	period   string
	start    string
	end      string
	interval string
	dryRun   bool
}

func (f *priceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.period, "period", "5d", "time period for historical data (1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max)")
	cmd.Flags().StringVar(&f.start, "start", "", "first day to fetch (YYYY-MM-DD); overrides --period")
	cmd.Flags().StringVar(&f.end, "end", "", "day after the last one to fetch (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&f.interval, "interval", "1d", "bar interval: 1d, 5d, 1wk, 1mo or 3mo")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show data without saving to database")
}

func (f *priceFlags) query() (entity.HistoryQuery, error) {
	q := entity.HistoryQuery{Period: f.period, Interval: f.interval}
	var err error
	if f.start != "" {
		if q.Start, err = record.ParseDate(f.start); err != nil {
			return q, fmt.Errorf("--start: %w", err)
		}
		q.Period = ""
	}
	if f.end != "" {
		if q.Start.IsZero() {
			return q, fmt.Errorf("--end requires --start")
		}
		if q.End, err = record.ParseDate(f.end); err != nil {
			return q, fmt.Errorf("--end: %w", err)
		}
		if !q.End.After(q.Start) {
			return q, fmt.Errorf("--end %s is not after --start %s", f.end, f.start)
		}
	}
	return q, nil
}

func (f *priceFlags) describe(q entity.HistoryQuery) string {
	if q.Start.IsZero() {
		return "period: " + q.Period
	}
	end := "today"
	if !q.End.IsZero() {
		end = q.End.Format(time.DateOnly)
	}
	return fmt.Sprintf("from %s to %s", q.Start.Format(time.DateOnly), end)
}

func (a *app) pricesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Manage stock price data",
	}

	var one priceFlags
	add := &cobra.Command{
		Use:   "add TICKER",
		Short: "Add stock price history for a single ticker",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(ctx context.Context, args []string) error {
			q, err := one.query()
			if err != nil {
				return err
			}
			a.printf("Adding stock price data for %s (%s)...\n", args[0], one.describe(q))
			return a.addPrices(ctx, normalizeTickers(args), q, one.dryRun)
		}),
	}
	one.register(add)

	var many priceFlags
	addMany := &cobra.Command{
		Use:   "add-multiple TICKER...",
		Short: "Add stock price history for multiple tickers",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.runE(func(ctx context.Context, args []string) error {
			q, err := many.query()
			if err != nil {
				return err
			}
			tickers := normalizeTickers(args)
			a.printf("Adding stock price data for %d tickers: %s (%s)\n", len(tickers), strings.Join(tickers, ", "), many.describe(q))
			return a.addPrices(ctx, tickers, q, many.dryRun)
		}),
	}
	many.register(addMany)

	cmd.AddCommand(add, addMany)
	return cmd
}

func (a *app) addPrices(ctx context.Context, tickers []string, q entity.HistoryQuery, dryRun bool) error {
	results := a.uc.Prices.AddHistoryMany(ctx, tickers, q, dryRun)
	if dryRun {
		for _, r := range results {
			h, _ := r.Detail.(entity.History)
			if err := a.echoHistory(h); err != nil {
				return err
			}
		}
	}
	return a.finish(ctx, results)
}

func (a *app) echoHistory(h entity.History) error {
	if a.asJSON {
		return a.echoJSON(historyView{Ticker: h.Ticker, Records: h.Records})
	}
	a.printf("\nStock price data for %s:\n", h.Ticker)
	if h.Bars.Empty() {
		a.printf("  No data available\n")
		return nil
	}
	a.printf("  Rows: %d\n", len(h.Records))
	a.printf("  Columns: %v\n", h.Bars.Columns)
	a.printf("  Date range: %v to %v\n", h.Bars.Index[0], h.Bars.Index[len(h.Bars.Index)-1])
	return nil
}
