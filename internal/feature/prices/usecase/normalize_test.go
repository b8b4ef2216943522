package usecase_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold_digger/internal/feature/prices/usecase"
	"gold_digger/internal/shared/record"
)

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func ohlcTable(index []any, rows ...map[string]any) record.Table {
	return record.Table{Columns: []string{"Open", "High", "Low", "Close"}, Index: index, Rows: rows}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	testCases := []struct {
		name         string
		table        record.Table
		expectedErr  error
		validateFunc func(t *testing.T, recs []record.Record)
	}{
		{
			name: "success: six fields per bar with ticker and date",
			table: ohlcTable(
				[]any{day(2), "2024-01-03"},
				map[string]any{"Open": 187.15, "High": 188.44, "Low": 183.89, "Close": 185.64},
				map[string]any{"Open": 184.22, "High": 185.88, "Low": 183.43, "Close": 184.25},
			),
			validateFunc: func(t *testing.T, recs []record.Record) {
				require.Len(t, recs, 2)
				assert.Equal(t, record.Record{
					"date": day(2), "ticker": "AAPL",
					"open": 187.15, "high": 188.44, "low": 183.89, "close": 185.64,
				}, recs[0])
				assert.Equal(t, day(3), recs[1]["date"])
				assert.Len(t, recs[1], 6)
			},
		},
		{
			name: "success: NaN and nil cells become nil, not zero",
			table: ohlcTable(
				[]any{day(2)},
				map[string]any{"Open": math.NaN(), "High": nil, "Low": "n/a", "Close": 185.64},
			),
			validateFunc: func(t *testing.T, recs []record.Record) {
				require.Len(t, recs, 1)
				assert.Nil(t, recs[0]["open"])
				assert.Nil(t, recs[0]["high"])
				assert.Nil(t, recs[0]["low"])
				assert.Equal(t, 185.64, recs[0]["close"])
				assert.Contains(t, recs[0], "open")
			},
		},
		{
			name: "success: exchange-local timestamp keeps its trading date",
			table: ohlcTable(
				[]any{time.Date(2024, 1, 2, 9, 30, 0, 0, ny)},
				map[string]any{"Open": 1.0, "High": 1.0, "Low": 1.0, "Close": 1.0},
			),
			validateFunc: func(t *testing.T, recs []record.Record) {
				assert.Equal(t, day(2), recs[0]["date"])
			},
		},
		{
			name: "success: volume column is ignored",
			table: record.Table{
				Columns: []string{"Open", "High", "Low", "Close", "Volume"},
				Index:   []any{day(2)},
				Rows:    []map[string]any{{"Open": 1.0, "High": 2.0, "Low": 0.5, "Close": 1.5, "Volume": int64(100)}},
			},
			validateFunc: func(t *testing.T, recs []record.Record) {
				assert.NotContains(t, recs[0], "volume")
				assert.NotContains(t, recs[0], "Volume")
			},
		},
		{
			name: "success: row with bad date is dropped",
			table: ohlcTable(
				[]any{"yesterday", day(3)},
				map[string]any{"Open": 1.0, "High": 1.0, "Low": 1.0, "Close": 1.0},
				map[string]any{"Open": 2.0, "High": 2.0, "Low": 2.0, "Close": 2.0},
			),
			validateFunc: func(t *testing.T, recs []record.Record) {
				require.Len(t, recs, 1)
				assert.Equal(t, day(3), recs[0]["date"])
			},
		},
		{
			name:        "error: empty table",
			table:       record.Table{Columns: []string{"Open", "High", "Low", "Close"}},
			expectedErr: record.ErrEmptyInput,
		},
		{
			name: "error: missing price columns",
			table: record.Table{
				Columns: []string{"Open", "Close"},
				Index:   []any{day(2)},
				Rows:    []map[string]any{{"Open": 1.0, "Close": 1.0}},
			},
			expectedErr: record.ErrMissingColumns,
		},
		{
			name: "error: every date invalid",
			table: ohlcTable(
				[]any{struct{}{}},
				map[string]any{"Open": 1.0, "High": 1.0, "Low": 1.0, "Close": 1.0},
			),
			expectedErr: record.ErrValidation,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			recs, err := usecase.Normalize(tc.table, "AAPL")
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			tc.validateFunc(t, recs)
		})
	}
}

func TestNormalize_MissingColumnsAreEnumerated(t *testing.T) {
	t.Parallel()

	_, err := usecase.Normalize(record.Table{
		Columns: []string{"Open"},
		Index:   []any{day(2)},
		Rows:    []map[string]any{{"Open": 1.0}},
	}, "AAPL")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "High, Low, Close")
}
