package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"gold_digger/internal/shared/record"
)

// Option chain sides accepted by Options.
const (
	SideCalls = "calls"
	SidePuts  = "puts"
)

const dateLayout = "2006-01-02"

// timestampFields are unix seconds in the option chain and are returned as time.Time.
var timestampFields = []string{"expiration", "lastTradeDate"}

// OptionDates returns the listed expiration dates of ticker as YYYY-MM-DD.
func (c *Client) OptionDates(ctx context.Context, ticker string) ([]string, error) {
	body, err := c.get(ctx, optionsPath, ticker, "optionChain", nil)
	if err != nil {
		return nil, err
	}
	res, err := result(body, "optionChain", ticker)
	if err != nil {
		return nil, err
	}

	stamps := res.Get("expirationDates").Array()
	dates := make([]string, 0, len(stamps))
	for _, s := range stamps {
		dates = append(dates, time.Unix(s.Int(), 0).UTC().Format(dateLayout))
	}
	return dates, nil
}

// Options returns one side of the chain expiring on date (YYYY-MM-DD; empty
// selects the nearest expiration). Rows keep Yahoo's field names.
func (c *Client) Options(ctx context.Context, ticker, date, side string) (record.Table, error) {
	if side != SideCalls && side != SidePuts {
		return record.Table{}, fmt.Errorf("%w: unknown option side %q", ErrAPI, side)
	}

	params := url.Values{}
	if date != "" {
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return record.Table{}, fmt.Errorf("%w: %q", record.ErrUnsupportedDate, date)
		}
		params.Set("date", strconv.FormatInt(d.Unix(), 10))
	}

	body, err := c.get(ctx, optionsPath, ticker, "optionChain", params)
	if err != nil {
		return record.Table{}, err
	}
	res, err := result(body, "optionChain", ticker)
	if err != nil {
		return record.Table{}, err
	}

	contracts := res.Get("options.0." + side).Array()
	table := record.Table{
		Index: make([]any, 0, len(contracts)),
		Rows:  make([]map[string]any, 0, len(contracts)),
	}
	seen := map[string]bool{}
	for i, contract := range contracts {
		row, err := decodeObject(contract.Raw)
		if err != nil {
			return record.Table{}, fmt.Errorf("%w: decode %s contract %d: %v", ErrAPI, side, i, err)
		}
		for _, f := range timestampFields {
			v, ok := row[f]
			if !ok || v == nil {
				continue
			}
			if secs, err := record.ToInt(v); err == nil {
				row[f] = time.Unix(secs, 0).UTC()
			}
		}
		for k := range row {
			if !seen[k] {
				seen[k] = true
				table.Columns = append(table.Columns, k)
			}
		}
		table.Index = append(table.Index, i)
		table.Rows = append(table.Rows, row)
	}
	sort.Strings(table.Columns)
	return table, nil
}
