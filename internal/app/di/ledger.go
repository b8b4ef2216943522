package di

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"gold_digger/internal/platform/ledger"
	"gold_digger/internal/platform/redis"
)

// NewLedger creates the ingest ledger.
// If Redis is configured and reachable, entries are written to it.
// Otherwise the returned ledger is disabled and records nothing.
func NewLedger(ctx context.Context, cfg redis.Config, ttl time.Duration) *ledger.Ledger {
	if !cfg.Enabled() {
		return ledger.New(nil, ttl, "")
	}
	rdb, err := redis.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("ledger disabled")
		return ledger.New(nil, ttl, "")
	}
	return ledger.New(rdb, ttl, "")
}
