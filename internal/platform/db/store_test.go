package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gold_digger/internal/shared/record"
)

const testSchema = `
CREATE TABLE stock_prices (
	symbol TEXT NOT NULL,
	date DATE NOT NULL,
	open REAL,
	high REAL,
	low REAL,
	close REAL,
	volume INTEGER,
	created_at DATE,
	PRIMARY KEY (symbol, date)
);
CREATE TABLE companies (
	symbol TEXT PRIMARY KEY
);
CREATE TABLE readings (
	id TEXT PRIMARY KEY,
	value REAL NOT NULL
);`

func newTestStore(t *testing.T, batchSize int) (*Store, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.Exec(testSchema).Error)
	return NewStore(gdb, batchSize), gdb
}

func priceRecord(symbol string, day time.Time, close float64) record.Record {
	return record.Record{
		"symbol": symbol,
		"date":   day,
		"open":   close - 1,
		"high":   close + 1,
		"low":    close - 2,
		"close":  close,
		"volume": int64(1000),
	}
}

func TestStore_TableColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table string
		want  []string
	}{
		{
			name:  "existing table",
			table: "stock_prices",
			want:  []string{"close", "created_at", "date", "high", "low", "open", "symbol", "volume"},
		},
		{
			name:  "missing table yields empty set",
			table: "no_such_table",
			want:  []string{},
		},
		{
			name:  "invalid name yields empty set",
			table: "stock_prices; DROP TABLE companies",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, _ := newTestStore(t, 0)
			got := store.TableColumns(context.Background(), tt.table)
			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestStore_TableColumns_ReadsFresh(t *testing.T) {
	t.Parallel()

	store, gdb := newTestStore(t, 0)
	ctx := context.Background()

	assert.False(t, store.TableColumns(ctx, "companies").Has("sector"))
	require.NoError(t, gdb.Exec("ALTER TABLE companies ADD COLUMN sector TEXT").Error)
	assert.True(t, store.TableColumns(ctx, "companies").Has("sector"))
}

func TestStore_Upsert_UpdatesExistingRow(t *testing.T) {
	t.Parallel()

	store, gdb := newTestStore(t, 0)
	ctx := context.Background()
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	keys := []string{"symbol", "date"}

	_, err := store.Upsert(ctx, "stock_prices", []record.Record{priceRecord("AAPL", day, 185.5)}, keys)
	require.NoError(t, err)
	_, err = store.Upsert(ctx, "stock_prices", []record.Record{priceRecord("AAPL", day, 186.0)}, keys)
	require.NoError(t, err)

	var count int64
	require.NoError(t, gdb.Table("stock_prices").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var closePrice float64
	require.NoError(t, gdb.Raw("SELECT close FROM stock_prices WHERE symbol = ?", "AAPL").Scan(&closePrice).Error)
	assert.Equal(t, 186.0, closePrice)
}

func TestStore_Upsert_Batches(t *testing.T) {
	t.Parallel()

	store, gdb := newTestStore(t, 2)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	recs := make([]record.Record, 5)
	for i := range recs {
		recs[i] = priceRecord("MSFT", start.AddDate(0, 0, i), float64(400+i))
	}

	affected, err := store.Upsert(context.Background(), "stock_prices", recs, []string{"symbol", "date"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), affected)

	var count int64
	require.NoError(t, gdb.Table("stock_prices").Count(&count).Error)
	assert.Equal(t, int64(5), count)
}

func TestStore_Upsert_FailedBatchRollsBackAll(t *testing.T) {
	t.Parallel()

	store, gdb := newTestStore(t, 2)
	recs := []record.Record{
		{"id": "a", "value": 1.0},
		{"id": "b", "value": 2.0},
		{"id": "c", "value": nil},
	}

	_, err := store.Upsert(context.Background(), "readings", recs, []string{"id"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)

	var serr *StorageError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "readings", serr.Table)
	assert.Equal(t, KindConstraint, serr.Kind)

	var count int64
	require.NoError(t, gdb.Table("readings").Count(&count).Error)
	assert.Zero(t, count)
}

func TestStore_Upsert_KeyOnlyRecordIsInsertIgnore(t *testing.T) {
	t.Parallel()

	store, gdb := newTestStore(t, 0)
	ctx := context.Background()
	rec := record.Record{"symbol": "AAPL"}

	_, err := store.UpsertOne(ctx, "companies", rec, []string{"symbol"})
	require.NoError(t, err)
	_, err = store.UpsertOne(ctx, "companies", rec, []string{"symbol"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, gdb.Table("companies").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStore_Upsert_UnknownColumnIsStorageError(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, 0)
	_, err := store.UpsertOne(context.Background(), "companies", record.Record{"symbol": "AAPL", "bogus": 1}, []string{"symbol"})
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, record.ErrValidation)
}

func TestBuildPlan(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		table        string
		records      []record.Record
		keys         []string
		wantErr      error
		validateFunc func(t *testing.T, p Plan)
	}{
		{
			name:    "update columns exclude keys",
			table:   "stock_prices",
			records: []record.Record{priceRecord("AAPL", day, 1)},
			keys:    []string{"symbol", "date"},
			validateFunc: func(t *testing.T, p Plan) {
				assert.Equal(t, []string{"close", "date", "high", "low", "open", "symbol", "volume"}, p.Columns)
				assert.Equal(t, []string{"close", "high", "low", "open", "volume"}, p.Updates)
				assert.Len(t, p.Rows, 1)
			},
		},
		{
			name:    "schema qualified table",
			table:   "market.stock_prices",
			records: []record.Record{{"symbol": "AAPL"}},
			keys:    []string{"symbol"},
			validateFunc: func(t *testing.T, p Plan) {
				assert.Empty(t, p.Updates)
			},
		},
		{
			name:    "empty records",
			table:   "companies",
			keys:    []string{"symbol"},
			wantErr: record.ErrEmptyInput,
		},
		{
			name:    "no keys",
			table:   "companies",
			records: []record.Record{{"symbol": "AAPL"}},
			wantErr: record.ErrMissingNaturalKey,
		},
		{
			name:    "key column absent",
			table:   "companies",
			records: []record.Record{{"sector": "Tech"}},
			keys:    []string{"symbol"},
			wantErr: record.ErrMissingNaturalKey,
		},
		{
			name:    "key value missing",
			table:   "companies",
			records: []record.Record{{"symbol": nil, "sector": "Tech"}},
			keys:    []string{"symbol"},
			wantErr: record.ErrMissingNaturalKey,
		},
		{
			name:    "column sets differ",
			table:   "companies",
			records: []record.Record{{"symbol": "A", "sector": "x"}, {"symbol": "B", "industry": "y"}},
			keys:    []string{"symbol"},
			wantErr: record.ErrValidation,
		},
		{
			name:    "duplicate natural key",
			table:   "stock_prices",
			records: []record.Record{priceRecord("AAPL", day, 1), priceRecord("AAPL", day, 2)},
			keys:    []string{"symbol", "date"},
			wantErr: record.ErrValidation,
		},
		{
			name:    "duplicate key across time zones",
			table:   "stock_prices",
			records: []record.Record{priceRecord("AAPL", day, 1), priceRecord("AAPL", day.In(time.FixedZone("EST", -5*3600)), 2)},
			keys:    []string{"symbol", "date"},
			wantErr: record.ErrValidation,
		},
		{
			name:    "same date for different tickers",
			table:   "stock_prices",
			records: []record.Record{priceRecord("AAPL", day, 1), priceRecord("MSFT", day, 2)},
			keys:    []string{"symbol", "date"},
			validateFunc: func(t *testing.T, p Plan) {
				assert.Len(t, p.Rows, 2)
			},
		},
		{
			name:    "invalid table",
			table:   "companies`; DROP TABLE x; --",
			records: []record.Record{{"symbol": "A"}},
			keys:    []string{"symbol"},
			wantErr: ErrInvalidIdentifier,
		},
		{
			name:    "invalid key",
			table:   "companies",
			records: []record.Record{{"sym bol": "A"}},
			keys:    []string{"sym bol"},
			wantErr: ErrInvalidIdentifier,
		},
		{
			name:    "quote in column",
			table:   "companies",
			records: []record.Record{{"symbol": "A", "x`y": 1}},
			keys:    []string{"symbol"},
			wantErr: ErrInvalidIdentifier,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := BuildPlan(tt.table, tt.records, tt.keys)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.validateFunc != nil {
				tt.validateFunc(t, p)
			}
		})
	}
}

func TestPlan_OnConflict(t *testing.T) {
	t.Parallel()

	keyOnly := Plan{Keys: []string{"symbol"}}

	oc := keyOnly.onConflict("sqlite")
	assert.True(t, oc.DoNothing)

	oc = keyOnly.onConflict("mysql")
	assert.False(t, oc.DoNothing)
	require.Len(t, oc.DoUpdates, 1)
	assert.Equal(t, "symbol", oc.DoUpdates[0].Column.Name)

	full := Plan{Keys: []string{"symbol"}, Updates: []string{"sector"}}
	oc = full.onConflict("postgres")
	require.Len(t, oc.DoUpdates, 1)
	assert.Equal(t, "sector", oc.DoUpdates[0].Column.Name)
}

func TestStore_Render(t *testing.T) {
	t.Parallel()

	store, gdb := newTestStore(t, 0)
	p, err := BuildPlan("companies", []record.Record{{"symbol": "AAPL"}}, []string{"symbol"})
	require.NoError(t, err)

	sql := store.Render(p)
	assert.Contains(t, sql, "INSERT INTO")
	assert.Contains(t, sql, "ON CONFLICT")
	assert.Contains(t, sql, "AAPL")

	var count int64
	require.NoError(t, gdb.Table("companies").Count(&count).Error)
	assert.Zero(t, count)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, KindConstraint},
		{"mysql truncated", &mysql.MySQLError{Number: 1406}, KindData},
		{"mysql unknown column", &mysql.MySQLError{Number: 1054}, KindStatement},
		{"mysql other", &mysql.MySQLError{Number: 2013}, KindExecution},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, KindConstraint},
		{"postgres data", &pgconn.PgError{Code: "22001"}, KindData},
		{"postgres undefined column", &pgconn.PgError{Code: "42703"}, KindStatement},
		{"bad conn", fmt.Errorf("exec: %w", driver.ErrBadConn), KindConnection},
		{"sqlite constraint text", errors.New("NOT NULL constraint failed: readings.value"), KindConstraint},
		{"unknown", errors.New("boom"), KindExecution},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestStorageError_Is(t *testing.T) {
	t.Parallel()

	cause := errors.New("driver failure")
	err := fmt.Errorf("wrap: %w", newStorageError("upsert", "companies", cause))

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConnection)
}
