// Package yahoo is a client for the unofficial Yahoo Finance JSON endpoints:
// quote summary, chart history and option chains.
package yahoo

import "time"

const (
	DefaultBaseURL           = "https://query2.finance.yahoo.com"
	DefaultCookieURL         = "https://fc.yahoo.com"
	DefaultUserAgent         = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	DefaultRequestsPerMinute = 60
)

// quoteSummaryModules are merged into one flat info map by StockInfo.
var quoteSummaryModules = []string{
	"assetProfile",
	"summaryProfile",
	"summaryDetail",
	"defaultKeyStatistics",
	"financialData",
	"price",
	"quoteType",
}

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL           string        // e.g. "https://query2.finance.yahoo.com"
	CookieURL         string        // visited once to obtain the session cookie; empty skips the handshake
	Crumb             string        // fixed crumb; when set the handshake is skipped
	UserAgent         string
	Timeout           time.Duration // per request
	RequestsPerMinute int           // zero or less disables throttling
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return c
}
