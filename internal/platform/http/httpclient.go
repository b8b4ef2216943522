// Package http builds the outbound HTTP client shared by provider adapters.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole request when the caller passes zero.
const DefaultTimeout = 15 * time.Second

// NewHTTPClient returns a client with explicit dial, TLS and idle limits.
// http.DefaultClient has no timeout, so provider adapters always go through here.
//
// Proxy settings come from HTTP_PROXY / HTTPS_PROXY. Connections to the
// provider host are reused across requests of one run.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
