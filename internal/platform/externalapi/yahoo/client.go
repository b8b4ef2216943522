package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"gold_digger/internal/shared/ratelimiter"
	"gold_digger/internal/shared/record"
)

var (
	// ErrTickerNotFound is returned when Yahoo has no data for the symbol.
	ErrTickerNotFound = fmt.Errorf("%w: ticker not found", record.ErrNoData)

	// ErrAPI is returned for error payloads and unexpected response shapes.
	ErrAPI = errors.New("yahoo api error")
)

const (
	quoteSummaryPath = "/v10/finance/quoteSummary/{ticker}"
	chartPath        = "/v8/finance/chart/{ticker}"
	optionsPath      = "/v7/finance/options/{ticker}"
	crumbPath        = "/v1/test/getcrumb"
)

// Client fetches company info, price history and option chains.
// It is safe for concurrent use.
type Client struct {
	cfg     Config
	rc      *resty.Client
	limiter ratelimiter.RateLimiterInterface

	mu     sync.Mutex
	primed bool
	crumb  string
}

// NewClient builds a Client on top of hc. Throttling follows cfg.RequestsPerMinute.
func NewClient(cfg Config, hc *http.Client) *Client {
	cfg = cfg.WithDefaults()
	rc := resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")

	return &Client{
		cfg:     cfg,
		rc:      rc,
		limiter: ratelimiter.NewRateLimiter(cfg.RequestsPerMinute, time.Minute),
	}
}

// get performs a throttled GET and returns the body of a 2xx response.
// root names the top-level object that carries Yahoo's error payload.
func (c *Client) get(ctx context.Context, path, ticker, root string, params url.Values) ([]byte, error) {
	crumb := c.ensureCrumb(ctx)

	if err := c.limiter.WaitIfNeeded(ctx); err != nil {
		return nil, err
	}

	req := c.rc.R().SetContext(ctx).SetPathParam("ticker", ticker)
	if params != nil {
		req.SetQueryParamsFromValues(params)
	}
	if crumb != "" {
		req.SetQueryParam("crumb", crumb)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("yahoo get %s: %w", ticker, err)
	}

	body := resp.Body()
	if code := resp.StatusCode(); code >= 400 {
		desc := gjson.GetBytes(body, root+".error.description").String()
		if code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %s", ErrTickerNotFound, ticker, desc)
		}
		if desc != "" {
			return nil, fmt.Errorf("yahoo http %d: %s", code, desc)
		}
		return nil, fmt.Errorf("yahoo http %d", code)
	}
	return body, nil
}

// result returns root.result.0 or the error carried by the payload.
func result(body []byte, root, ticker string) (gjson.Result, error) {
	res := gjson.GetBytes(body, root+".result.0")
	if res.Exists() && res.Type != gjson.Null {
		return res, nil
	}
	apiErr := gjson.GetBytes(body, root+".error")
	if apiErr.Exists() && apiErr.Type != gjson.Null {
		code := apiErr.Get("code").String()
		desc := apiErr.Get("description").String()
		if strings.EqualFold(code, "Not Found") {
			return gjson.Result{}, fmt.Errorf("%w: %s: %s", ErrTickerNotFound, ticker, desc)
		}
		return gjson.Result{}, fmt.Errorf("%w: %s: %s", ErrAPI, code, desc)
	}
	return gjson.Result{}, fmt.Errorf("%w: %s: no data for %s", ErrTickerNotFound, root, ticker)
}

// ensureCrumb runs the cookie and crumb handshake once per client. A failed
// handshake is logged and requests continue without a crumb.
func (c *Client) ensureCrumb(ctx context.Context) string {
	if c.cfg.Crumb != "" {
		return c.cfg.Crumb
	}
	if c.cfg.CookieURL == "" {
		return ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.primed {
		return c.crumb
	}
	c.primed = true

	// The cookie endpoint usually answers 404; only its Set-Cookie matters.
	resp, err := c.rc.R().SetContext(ctx).Get(c.cfg.CookieURL)
	if err != nil {
		log.Warn().Err(err).Msg("yahoo cookie request failed")
		return ""
	}
	c.rc.SetCookies(resp.Cookies())

	resp, err = c.rc.R().SetContext(ctx).SetHeader("Accept", "text/plain").Get(crumbPath)
	if err != nil {
		log.Warn().Err(err).Msg("yahoo crumb request failed")
		return ""
	}
	if resp.StatusCode() >= 400 {
		log.Warn().Int("status", resp.StatusCode()).Msg("yahoo crumb request rejected")
		return ""
	}
	c.crumb = strings.TrimSpace(resp.String())
	log.Debug().Msg("yahoo crumb obtained")
	return c.crumb
}
