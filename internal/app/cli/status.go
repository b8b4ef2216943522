package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"gold_digger/internal/platform/ledger"
)

var errLedgerDisabled = errors.New("ingest ledger disabled: set REDIS_HOST")

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "status TICKER...",
		Short:       "Show the last recorded ingest outcome per ticker",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{noStoreAnnotation: ""},
		RunE: a.runE(func(ctx context.Context, args []string) error {
			if !a.ledger.Enabled() {
				return errLedgerDisabled
			}
			var entries []ledger.Entry
			for _, t := range normalizeTickers(args) {
				e, err := a.ledger.Status(ctx, t)
				if err != nil {
					return err
				}
				if len(e) == 0 {
					a.printf("No ingest recorded for %s\n", t)
				}
				entries = append(entries, e...)
			}
			if len(entries) > 0 {
				renderEntries(a.out, entries)
			}
			return nil
		}),
	}
}
