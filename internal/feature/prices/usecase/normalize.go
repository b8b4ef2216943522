package usecase

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"gold_digger/internal/shared/record"
)

// Columns of a stock_prices row.
const (
	ColDate   = "date"
	ColTicker = "ticker"
	ColOpen   = "open"
	ColHigh   = "high"
	ColLow    = "low"
	ColClose  = "close"
)

// NaturalKey identifies one bar per ticker and trading day.
var NaturalKey = []string{ColDate, ColTicker}

// priceColumns maps provider columns onto stock_prices columns.
var priceColumns = []struct{ from, to string }{
	{"Open", ColOpen},
	{"High", ColHigh},
	{"Low", ColLow},
	{"Close", ColClose},
}

// Normalize builds one six-field record per bar. The date comes from the row
// index; a row whose index is not a date is dropped and logged. Missing or
// non-numeric prices are stored as nil, never as zero. Volume is ignored.
func Normalize(table record.Table, ticker string) ([]record.Record, error) {
	if table.Empty() {
		return nil, record.ErrEmptyInput
	}

	var missing []string
	for _, c := range priceColumns {
		if !table.HasColumn(c.from) {
			missing = append(missing, c.from)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", record.ErrMissingColumns, strings.Join(missing, ", "))
	}

	out := make([]record.Record, 0, table.Len())
	for i, row := range table.Rows {
		var label any
		if i < len(table.Index) {
			label = table.Index[i]
		}
		date, err := record.ParseDate(label)
		if err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Int("row", i).Msg("skipping price row without a valid date")
			continue
		}

		rec := record.Record{ColDate: date, ColTicker: ticker}
		for _, c := range priceColumns {
			rec[c.to] = price(row[c.from])
		}
		out = append(out, rec)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no price row has a valid date", record.ErrValidation)
	}
	return out, nil
}

func price(v any) any {
	if record.IsMissing(v) {
		return nil
	}
	f, err := record.ToFloat(v)
	if err != nil {
		log.Debug().Err(err).Msg("price cell stored as null")
		return nil
	}
	return f
}
