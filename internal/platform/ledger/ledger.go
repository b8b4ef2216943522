// Package ledger keeps the last ingest outcome per entity and ticker in Redis.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"gold_digger/internal/shared/ingest"
)

const (
	defaultTTL       = 30 * 24 * time.Hour
	defaultNamespace = "golddigger"
)

// Entities lists the entities Status looks up, in display order.
var Entities = []ingest.Entity{ingest.EntityCompany, ingest.EntityPrices, ingest.EntityOptions}

// Entry is the stored outcome of one ticker for one entity.
type Entry struct {
	RunID      string        `json:"run_id"`
	Entity     ingest.Entity `json:"entity"`
	Ticker     string        `json:"ticker"`
	Status     ingest.Status `json:"status"`
	Rows       int64         `json:"rows"`
	Error      string        `json:"error,omitempty"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Ledger writes entries to Redis. A Ledger without a client does nothing,
// so ingestion never depends on Redis being available.
type Ledger struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	runID     string
}

// New creates a Ledger. If ttl is 0 it defaults to 30 days. If namespace is
// empty it uses "golddigger". Every entry written by this Ledger carries the
// same freshly generated run id.
func New(rdb *redis.Client, ttl time.Duration, namespace string) *Ledger {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &Ledger{rdb: rdb, ttl: ttl, namespace: namespace, runID: uuid.NewString()}
}

// Enabled reports whether the ledger is backed by Redis.
func (l *Ledger) Enabled() bool { return l != nil && l.rdb != nil }

// RunID identifies the current process run.
func (l *Ledger) RunID() string { return l.runID }

// Record stores results. Failures are logged and otherwise ignored.
func (l *Ledger) Record(ctx context.Context, results ...ingest.Result) {
	if !l.Enabled() {
		return
	}
	for _, r := range results {
		e := Entry{
			RunID:      l.runID,
			Entity:     r.Entity,
			Ticker:     r.Ticker,
			Status:     r.Status,
			Rows:       r.Rows,
			FinishedAt: r.FinishedAt,
		}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		b, err := json.Marshal(e)
		if err != nil {
			log.Warn().Err(err).Str("ticker", r.Ticker).Msg("ledger: encode entry")
			continue
		}
		if err := l.rdb.Set(ctx, l.key(r.Entity, r.Ticker), string(b), l.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("ticker", r.Ticker).Str("entity", string(r.Entity)).Msg("ledger: write entry")
		}
	}
}

// Get returns the entry for entity and ticker. ok is false when none is stored
// or the ledger is disabled.
func (l *Ledger) Get(ctx context.Context, entity ingest.Entity, ticker string) (Entry, bool, error) {
	if !l.Enabled() {
		return Entry{}, false, nil
	}
	key := l.key(entity, ticker)
	b, err := l.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("ledger get %s: %w", key, err)
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		// Delete corrupted entry
		_ = l.rdb.Del(ctx, key).Err()
		return Entry{}, false, fmt.Errorf("ledger decode %s: %w", key, err)
	}
	return e, true, nil
}

// Status returns the stored entries of ticker for every entity.
func (l *Ledger) Status(ctx context.Context, ticker string) ([]Entry, error) {
	var out []Entry
	for _, ent := range Entities {
		e, ok, err := l.Get(ctx, ent, ticker)
		if err != nil {
			return out, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l *Ledger) key(entity ingest.Entity, ticker string) string {
	return fmt.Sprintf("%s:ledger:%s:%s", l.namespace, safe(string(entity)), safe(strings.ToUpper(ticker)))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
