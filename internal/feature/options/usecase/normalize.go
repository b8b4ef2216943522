package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"gold_digger/internal/feature/options/domain/entity"
	"gold_digger/internal/shared/fieldmap"
	"gold_digger/internal/shared/record"
)

// Columns set by the normaliser rather than taken from the contract.
const (
	ColContractSymbol = "contract_symbol"
	ColTicker         = "ticker"
	ColExpiration     = "expiration_date"
	ColCreatedAt      = "created_at"
)

// NaturalKey makes one row per contract and scrape day.
var NaturalKey = []string{ColContractSymbol, ColCreatedAt}

type coercer func(any) (any, error)

var (
	asFloat coercer = func(v any) (any, error) { return record.ToFloat(v) }
	asInt   coercer = func(v any) (any, error) { return record.ToInt(v) }
	asBool  coercer = func(v any) (any, error) { return record.ToBool(v) }
	asText  coercer = func(v any) (any, error) { return record.ToString(v) }
)

// fieldCoercers groups contract columns by storage type. Columns not listed,
// last_trade_date among them, are stored as received.
var fieldCoercers = map[string]coercer{
	"strike_price":       asFloat,
	"last_price":         asFloat,
	"bid":                asFloat,
	"ask":                asFloat,
	"change":             asFloat,
	"percent_change":     asFloat,
	"implied_volatility": asFloat,
	"volume":             asInt,
	"open_interest":      asInt,
	"in_the_money":       asBool,
	"contract_symbol":    asText,
	"contract_size":      asText,
	"currency":           asText,
}

// Normalize converts one side of an option chain into rows for class's table.
//
// The first pass collects every mapped, schema-known field that has a value in
// at least one contract. The second pass gives every row all of those fields
// (nil where the contract has none) plus ticker, expiration_date and
// created_at, then projects it onto schema. An empty table is a no-op.
func Normalize(
	table record.Table,
	schema record.ColumnSet,
	mapper fieldmap.Mapper,
	ticker string,
	class entity.OptionClass,
	expiration, createdAt time.Time,
) ([]record.Record, error) {
	if !class.Valid() {
		return nil, fmt.Errorf("%w: %q", record.ErrInvalidOptionClass, class)
	}
	if table.Empty() {
		log.Warn().Str("ticker", ticker).Str("class", string(class)).Msg("no option contracts to normalize")
		return nil, nil
	}
	for _, k := range NaturalKey {
		if !schema.Has(k) {
			return nil, fmt.Errorf("%w: %s.%s not in schema", record.ErrMissingNaturalKey, class.Table(), k)
		}
	}

	union := map[string]bool{}
	for _, row := range table.Rows {
		for k, v := range row {
			if record.IsMissing(v) {
				continue
			}
			if col := mapper.Map(k); schema.Has(col) {
				union[col] = true
			}
		}
	}

	out := make([]record.Record, 0, table.Len())
	for i, row := range table.Rows {
		rec := record.Record{
			ColTicker:     ticker,
			ColExpiration: expiration,
			ColCreatedAt:  createdAt,
		}
		for col := range union {
			rec[col] = nil
		}

		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			col := mapper.Map(k)
			v := row[k]
			if !union[col] || record.IsMissing(v) {
				continue
			}
			c, ok := fieldCoercers[col]
			if !ok {
				rec[col] = record.Scalar(v)
				continue
			}
			cv, err := c(v)
			if err != nil {
				log.Debug().Err(err).Str("ticker", ticker).Str("field", col).Int("row", i).Msg("option field stored as null")
				continue
			}
			rec[col] = cv
		}

		if record.IsMissing(rec[ColContractSymbol]) || rec[ColContractSymbol] == "" {
			log.Warn().Str("ticker", ticker).Str("class", string(class)).Int("row", i).Msg("skipping option contract without contract symbol")
			continue
		}
		out = append(out, record.Project(rec, schema))
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no %s contract has a contract symbol", record.ErrMissingNaturalKey, class)
	}
	return out, nil
}
