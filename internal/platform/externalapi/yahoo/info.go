package yahoo

import (
	"context"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// StockInfo returns the company profile, key statistics and quote of ticker
// merged into one flat map keyed by Yahoo's field names. Nested values such as
// companyOfficers are kept as decoded maps and slices.
func (c *Client) StockInfo(ctx context.Context, ticker string) (map[string]any, error) {
	params := url.Values{}
	params.Set("modules", strings.Join(quoteSummaryModules, ","))
	params.Set("formatted", "false")

	body, err := c.get(ctx, quoteSummaryPath, ticker, "quoteSummary", params)
	if err != nil {
		return nil, err
	}
	res, err := result(body, "quoteSummary", ticker)
	if err != nil {
		return nil, err
	}

	info := map[string]any{}
	res.ForEach(func(_, module gjson.Result) bool {
		if !module.IsObject() {
			return true
		}
		module.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			if key == "maxAge" {
				return true
			}
			if _, seen := info[key]; seen {
				return true
			}
			if val, ok := unwrap(v); ok {
				info[key] = val
			}
			return true
		})
		return true
	})

	if _, ok := info["symbol"]; !ok && len(info) > 0 {
		info["symbol"] = strings.ToUpper(ticker)
	}
	return info, nil
}
