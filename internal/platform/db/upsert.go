package db

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gold_digger/internal/shared/record"
)

// Plan is a validated upsert: the shared column list, the natural key and the
// columns refreshed when a row with the same key already exists.
type Plan struct {
	Table   string
	Columns []string
	Keys    []string
	Updates []string
	Rows    []map[string]any
}

// BuildPlan validates records against keys. Every record must carry the same
// column set and a value for every key column.
func BuildPlan(table string, records []record.Record, keys []string) (Plan, error) {
	if err := validateTable(table); err != nil {
		return Plan{}, err
	}
	if len(records) == 0 {
		return Plan{}, record.ErrEmptyInput
	}
	if len(keys) == 0 {
		return Plan{}, fmt.Errorf("%w: no key columns for %s", record.ErrMissingNaturalKey, table)
	}

	cols := records[0].Columns()
	if len(cols) == 0 {
		return Plan{}, record.ErrNoPersistableFields
	}
	for _, c := range cols {
		if err := validateColumn(c); err != nil {
			return Plan{}, err
		}
	}
	colSet := record.NewColumnSet(cols...)

	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		if err := validateKey(k); err != nil {
			return Plan{}, err
		}
		if !colSet.Has(k) {
			return Plan{}, fmt.Errorf("%w: %s.%s", record.ErrMissingNaturalKey, table, k)
		}
		isKey[k] = true
	}

	seen := make(map[string]int, len(records))
	rows := make([]map[string]any, len(records))
	for i, r := range records {
		if len(r) != len(cols) {
			return Plan{}, fmt.Errorf("%w: record %d has %d columns, want %d", record.ErrValidation, i, len(r), len(cols))
		}
		for _, c := range cols {
			if _, ok := r[c]; !ok {
				return Plan{}, fmt.Errorf("%w: record %d lacks column %q", record.ErrValidation, i, c)
			}
		}
		for _, k := range keys {
			if record.IsMissing(r[k]) {
				return Plan{}, fmt.Errorf("%w: record %d has no value for %s", record.ErrMissingNaturalKey, i, k)
			}
		}
		id := keyOf(r, keys)
		if j, dup := seen[id]; dup {
			return Plan{}, fmt.Errorf("%w: records %d and %d share key %s", record.ErrValidation, j, i, id)
		}
		seen[id] = i
		row := make(map[string]any, len(r))
		for k, v := range r {
			row[k] = v
		}
		rows[i] = row
	}

	updates := make([]string, 0, len(cols))
	for _, c := range cols {
		if !isKey[c] {
			updates = append(updates, c)
		}
	}
	sort.Strings(updates)

	return Plan{
		Table:   table,
		Columns: cols,
		Keys:    append([]string(nil), keys...),
		Updates: updates,
		Rows:    rows,
	}, nil
}

// keyOf renders the natural key of r. Times are compared in UTC.
func keyOf(r record.Record, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		v := r[k]
		if t, ok := v.(time.Time); ok {
			v = t.UTC().Format(time.RFC3339Nano)
		}
		parts[i] = fmt.Sprintf("%s=%v", k, v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// onConflict builds the conflict clause for dialect. With nothing to update
// the row is left untouched: MySQL gets a no-op self assignment of the first
// key, the others DO NOTHING.
func (p Plan) onConflict(dialect string) clause.OnConflict {
	cols := make([]clause.Column, len(p.Keys))
	for i, k := range p.Keys {
		cols[i] = clause.Column{Name: k}
	}
	oc := clause.OnConflict{Columns: cols}
	switch {
	case len(p.Updates) > 0:
		oc.DoUpdates = clause.AssignmentColumns(p.Updates)
	case dialect == string(DialectMySQL):
		oc.DoUpdates = clause.AssignmentColumns(p.Keys[:1])
	default:
		oc.DoNothing = true
	}
	return oc
}

// Upsert inserts records into table, updating every non-key column when a row
// with the same natural key exists. Rows go out in batches inside a single
// transaction, so either all of them land or none do. It returns the number
// of affected rows as reported by the driver.
func (s *Store) Upsert(ctx context.Context, table string, records []record.Record, keys []string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("%w: %v", ErrConnection, errNoStore)
	}
	plan, err := BuildPlan(table, records, keys)
	if err != nil {
		log.Error().Err(err).Str("table", table).Strs("keys", keys).Int("records", len(records)).Msg("upsert rejected")
		return 0, err
	}
	return s.Execute(ctx, plan)
}

// UpsertOne is Upsert for a single record.
func (s *Store) UpsertOne(ctx context.Context, table string, rec record.Record, keys []string) (int64, error) {
	return s.Upsert(ctx, table, []record.Record{rec}, keys)
}

// Execute runs a plan built by BuildPlan.
func (s *Store) Execute(ctx context.Context, plan Plan) (int64, error) {
	oc := plan.onConflict(s.Dialect())

	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess := tx.Session(&gorm.Session{SkipDefaultTransaction: true})
		for start := 0; start < len(plan.Rows); start += s.batchSize {
			end := start + s.batchSize
			if end > len(plan.Rows) {
				end = len(plan.Rows)
			}
			res := sess.Table(plan.Table).Clauses(oc).Create(plan.Rows[start:end])
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		serr := newStorageError("upsert", plan.Table, err)
		log.Error().Err(err).
			Str("table", plan.Table).
			Strs("keys", plan.Keys).
			Int("rows", len(plan.Rows)).
			Str("kind", serr.Kind).
			Msg("upsert failed")
		return 0, serr
	}

	log.Debug().Str("table", plan.Table).Int("rows", len(plan.Rows)).Int64("affected", affected).Msg("upsert committed")
	return affected, nil
}

// Render returns the SQL of the plan's first batch with values inlined. No
// statement is sent to the database.
func (s *Store) Render(plan Plan) string {
	if s == nil || s.db == nil || len(plan.Rows) == 0 {
		return ""
	}
	n := len(plan.Rows)
	if n > s.batchSize {
		n = s.batchSize
	}
	stmt := s.db.Session(&gorm.Session{DryRun: true, SkipDefaultTransaction: true}).
		Table(plan.Table).
		Clauses(plan.onConflict(s.Dialect())).
		Create(plan.Rows[:n]).
		Statement
	return s.db.Dialector.Explain(stmt.SQL.String(), stmt.Vars...)
}
