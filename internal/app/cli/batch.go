package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	priceentity "gold_digger/internal/feature/prices/domain/entity"
	"gold_digger/internal/shared/ingest"
)

var errNoOperation = errors.New("specify at least one operation: --companies, --prices or --options")

func (a *app) batchCmd() *cobra.Command {
	var (
		companies, prices, options bool
		pf                         priceFlags
		of                         optionFlags
	)

	cmd := &cobra.Command{
		Use:   "batch TICKER...",
		Short: "Run multiple operations on a list of tickers",
		Long: `batch runs the selected operations in the order companies, prices,
options. Each operation processes every ticker before the next one starts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runE(func(ctx context.Context, args []string) error {
			if !companies && !prices && !options {
				return errNoOperation
			}
			class, err := of.selection()
			if err != nil {
				return err
			}
			tickers := normalizeTickers(args)
			a.printf("Running batch operations for %d tickers: %s\n", len(tickers), strings.Join(tickers, ", "))

			var results []ingest.Result
			if companies {
				a.printf("\n=== Adding company data ===\n")
				results = append(results, a.uc.Companies.AddMany(ctx, tickers, pf.dryRun)...)
			}
			if prices {
				a.printf("\n=== Adding stock price data ===\n")
				results = append(results, a.uc.Prices.AddHistoryMany(ctx, tickers, priceentity.HistoryQuery{
					Period:   pf.period,
					Interval: pf.interval,
				}, pf.dryRun)...)
			}
			if options {
				a.printf("\n=== Scraping options data ===\n")
				results = append(results, a.uc.Options.ScrapeTickers(ctx, tickers, class, of.date, pf.dryRun)...)
			}

			err = a.finish(ctx, results)
			a.printf("\nBatch operations completed!\n")
			return err
		}),
	}

	cmd.Flags().BoolVar(&companies, "companies", false, "add company data")
	cmd.Flags().BoolVar(&prices, "prices", false, "add stock price data")
	cmd.Flags().BoolVar(&options, "options", false, "scrape options data")
	cmd.Flags().StringVar(&pf.period, "price-period", "5d", "time period for historical data")
	cmd.Flags().StringVar(&pf.interval, "price-interval", "1d", "bar interval for historical data: 1d, 5d, 1wk, 1mo or 3mo")
	of.register(cmd, "option-type", "option-date")
	cmd.Flags().BoolVar(&pf.dryRun, "dry-run", false, "show data without saving to database")
	return cmd
}
