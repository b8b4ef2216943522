// Package cli implements the golddigger command line.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gold_digger/internal/app/config"
	"gold_digger/internal/app/di"
	"gold_digger/internal/platform/db"
	"gold_digger/internal/platform/ledger"
	"gold_digger/internal/shared/ingest"
	"gold_digger/internal/shared/record"
)

const version = "0.1.0"

// annotation marking commands that never touch the database.
const noStoreAnnotation = "golddigger/no-store"

var errAllFailed = errors.New("every ticker failed")

type app struct {
	v        *viper.Viper
	cfgFile  string
	logLevel string
	asJSON   bool
	out      io.Writer

	cfg    config.Config
	store  *db.Store
	ledger *ledger.Ledger
	uc     di.Usecases
}

// NewRootCmd builds the command tree around v.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v}

	root := &cobra.Command{
		Use:   "golddigger",
		Short: "golddigger loads Yahoo Finance data into a SQL database",
		Long: `golddigger fetches company profiles, daily price history and option chains
from Yahoo Finance and upserts them into existing MySQL, PostgreSQL or SQLite
tables. Only columns that exist in the live table are written, so the schema
can grow or shrink without code changes.

The database is selected with DATABASE_URL. With --dry-run nothing is written;
if DATABASE_URL is unset the fetched data is shown without consulting a schema.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.golddigger.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "with --dry-run, print the fetched and normalised data as JSON")

	root.AddCommand(
		a.companiesCmd(),
		a.pricesCmd(),
		a.optionsCmd(),
		a.batchCmd(),
		a.statusCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(viper.New()).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("golddigger failed")
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	a.cfg = config.Load(a.v)
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	setLogLevel(a.cfg.LogLevel)
	a.out = cmd.OutOrStdout()

	ctx := cmd.Context()
	a.ledger = di.NewLedger(ctx, a.cfg.Redis, a.cfg.LedgerTTL)
	if _, ok := cmd.Annotations[noStoreAnnotation]; ok {
		return nil
	}

	store, err := di.NewStore(a.cfg.DB)
	if err != nil {
		return err
	}
	a.store = store
	a.uc = di.NewUsecases(di.NewProvider(a.cfg.Yahoo), store)
	return nil
}

// runE adapts fn to cobra and releases the database once it returns.
func (a *app) runE(fn func(ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.close()
		return fn(cmd.Context(), args)
	}
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
		a.store = nil
	}
}

// finish records results in the ledger, prints the summary and turns the
// outcome into the command's error.
func (a *app) finish(ctx context.Context, results []ingest.Result) error {
	a.ledger.Record(ctx, results...)
	renderResults(a.out, results)
	if len(results) == 1 && results[0].Failed() {
		return results[0].Err
	}
	if ingest.AllFailed(results) {
		return errAllFailed
	}
	if n := ingest.Failures(results); n > 0 {
		log.Warn().Int("failed", n).Int("tickers", len(results)).Msg("some tickers failed")
	}
	return nil
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		if level != "" {
			log.Warn().Str("level", level).Msg("unknown log level, using info")
		}
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func normalizeTickers(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if t := record.NormalizeTicker(a); t != "" {
			out = append(out, t)
		}
	}
	return out
}
