package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"gold_digger/internal/feature/options/domain/entity"
)

type optionFlags struct {
	class  string
	date   string
	dryRun bool
}

func (f *optionFlags) register(cmd *cobra.Command, classFlag, dateFlag string) {
	cmd.Flags().StringVar(&f.class, classFlag, "", "option type to scrape: puts or calls (default both)")
	cmd.Flags().StringVar(&f.date, dateFlag, "", "specific expiration date (YYYY-MM-DD)")
}

// selection parses the class flag. A nil class means both sides.
func (f *optionFlags) selection() (*entity.OptionClass, error) {
	if f.class == "" {
		return nil, nil
	}
	c, err := entity.ParseOptionClass(f.class)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *app) optionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Manage options data",
	}

	var one optionFlags
	scrape := &cobra.Command{
		Use:   "scrape TICKER",
		Short: "Scrape options data for a single ticker",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(ctx context.Context, args []string) error {
			class, err := one.selection()
			if err != nil {
				return err
			}
			a.printf("Scraping options for %s...\n", args[0])
			a.describeOptions(one)
			return a.scrapeOptions(ctx, normalizeTickers(args), class, one.date, one.dryRun)
		}),
	}
	one.register(scrape, "type", "date")
	scrape.Flags().BoolVar(&one.dryRun, "dry-run", false, "show data without saving to database")

	var many optionFlags
	scrapeMany := &cobra.Command{
		Use:   "scrape-multiple TICKER...",
		Short: "Scrape options data for multiple tickers",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.runE(func(ctx context.Context, args []string) error {
			class, err := many.selection()
			if err != nil {
				return err
			}
			tickers := normalizeTickers(args)
			a.printf("Scraping options for %d tickers: %s\n", len(tickers), strings.Join(tickers, ", "))
			a.describeOptions(many)
			return a.scrapeOptions(ctx, tickers, class, many.date, many.dryRun)
		}),
	}
	many.register(scrapeMany, "type", "date")
	scrapeMany.Flags().BoolVar(&many.dryRun, "dry-run", false, "show data without saving to database")

	cmd.AddCommand(scrape, scrapeMany)
	return cmd
}

func (a *app) describeOptions(f optionFlags) {
	if f.class != "" {
		a.printf("  Option type: %s\n", f.class)
	}
	if f.date != "" {
		a.printf("  Expiration date: %s\n", f.date)
	}
}

func (a *app) scrapeOptions(ctx context.Context, tickers []string, class *entity.OptionClass, date string, dryRun bool) error {
	results := a.uc.Options.ScrapeTickers(ctx, tickers, class, date, dryRun)
	if dryRun {
		for _, r := range results {
			s, _ := r.Detail.(entity.Scrape)
			if err := a.echoScrape(s); err != nil {
				return err
			}
		}
	}
	return a.finish(ctx, results)
}

func (a *app) echoScrape(s entity.Scrape) error {
	if a.asJSON {
		return a.echoJSON(newScrapeView(s))
	}
	a.printf("\nOptions data for %s:\n", s.Ticker)
	if len(s.Chains) == 0 {
		a.printf("  No data available\n")
		return nil
	}
	last := ""
	for _, c := range s.Chains {
		if c.Expiration != last {
			a.printf("  Expiration: %s\n", c.Expiration)
			last = c.Expiration
		}
		n := c.Contracts.Len()
		if c.Records != nil {
			n = len(c.Records)
		}
		if n == 0 {
			a.printf("    %s: No data available\n", c.Class)
			continue
		}
		a.printf("    %s: %d contracts\n", c.Class, n)
	}
	return nil
}
