package yahoo

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"gold_digger/internal/shared/record"
)

// History columns, named as the chart endpoint's quote series.
const (
	ColOpen   = "Open"
	ColHigh   = "High"
	ColLow    = "Low"
	ColClose  = "Close"
	ColVolume = "Volume"
)

var historyColumns = []string{ColOpen, ColHigh, ColLow, ColClose, ColVolume}

// HistoricalData returns OHLCV bars for ticker. When start is set the window
// is [start, end) with end defaulting to now; otherwise period (e.g. "5d",
// "1mo") selects the window. The table index holds each bar's timestamp in the
// exchange's time zone; absent quotes are nil.
func (c *Client) HistoricalData(ctx context.Context, ticker, period string, start, end time.Time, interval string) (record.Table, error) {
	if interval == "" {
		interval = "1d"
	}
	params := url.Values{}
	params.Set("interval", interval)
	params.Set("includePrePost", "false")
	if !start.IsZero() {
		if end.IsZero() {
			end = time.Now()
		}
		params.Set("period1", strconv.FormatInt(start.Unix(), 10))
		params.Set("period2", strconv.FormatInt(end.Unix(), 10))
	} else {
		if period == "" {
			period = "5d"
		}
		params.Set("range", period)
	}

	body, err := c.get(ctx, chartPath, ticker, "chart", params)
	if err != nil {
		return record.Table{}, err
	}
	res, err := result(body, "chart", ticker)
	if err != nil {
		return record.Table{}, err
	}

	loc := time.FixedZone(res.Get("meta.exchangeTimezoneName").String(), int(res.Get("meta.gmtoffset").Int()))
	quote := res.Get("indicators.quote.0")
	series := map[string][]gjson.Result{
		ColOpen:   quote.Get("open").Array(),
		ColHigh:   quote.Get("high").Array(),
		ColLow:    quote.Get("low").Array(),
		ColClose:  quote.Get("close").Array(),
		ColVolume: quote.Get("volume").Array(),
	}

	stamps := res.Get("timestamp").Array()
	table := record.Table{
		Columns: append([]string(nil), historyColumns...),
		Index:   make([]any, 0, len(stamps)),
		Rows:    make([]map[string]any, 0, len(stamps)),
	}
	for i, ts := range stamps {
		row := make(map[string]any, len(historyColumns))
		for _, col := range historyColumns {
			s := series[col]
			switch {
			case i >= len(s) || s[i].Type != gjson.Number:
				row[col] = nil
			case col == ColVolume:
				row[col] = s[i].Int()
			default:
				row[col] = s[i].Float()
			}
		}
		table.Index = append(table.Index, time.Unix(ts.Int(), 0).In(loc))
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
