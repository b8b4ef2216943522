package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"gold_digger/internal/feature/companies/domain/entity"
	"gold_digger/internal/shared/ingest"
)

func (a *app) companiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Manage company data",
	}

	var dryRun bool
	add := &cobra.Command{
		Use:   "add TICKER",
		Short: "Add a single company to the database",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(ctx context.Context, args []string) error {
			a.printf("Adding company data for %s...\n", args[0])
			return a.addCompanies(ctx, normalizeTickers(args), dryRun)
		}),
	}
	add.Flags().BoolVar(&dryRun, "dry-run", false, "show data without saving to database")

	var dryRunMany bool
	addMany := &cobra.Command{
		Use:   "add-multiple TICKER...",
		Short: "Add multiple companies to the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.runE(func(ctx context.Context, args []string) error {
			tickers := normalizeTickers(args)
			a.printf("Adding company data for %d companies: %s\n", len(tickers), strings.Join(tickers, ", "))
			return a.addCompanies(ctx, tickers, dryRunMany)
		}),
	}
	addMany.Flags().BoolVar(&dryRunMany, "dry-run", false, "show data without saving to database")

	cmd.AddCommand(add, addMany)
	return cmd
}

func (a *app) addCompanies(ctx context.Context, tickers []string, dryRun bool) error {
	results := a.uc.Companies.AddMany(ctx, tickers, dryRun)
	if dryRun {
		for _, r := range results {
			c, _ := r.Detail.(entity.Company)
			if err := a.echoCompany(c, r.Status); err != nil {
				return err
			}
		}
	}
	return a.finish(ctx, results)
}

func (a *app) echoCompany(c entity.Company, status ingest.Status) error {
	if a.asJSON {
		return a.echoJSON(companyView{Ticker: c.Ticker, Raw: c.Raw, Record: c.Record})
	}
	a.printf("\nCompany data for %s:\n", c.Ticker)
	fields := map[string]any(c.Record)
	if fields == nil {
		fields = c.Raw
	}
	if len(fields) == 0 || status == ingest.StatusFailed {
		a.printf("  No data available\n")
		return nil
	}
	printFields(a.out, fields)
	return nil
}
