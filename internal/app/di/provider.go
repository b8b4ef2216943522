// Package di provides dependency injection factories for creating application components.
package di

import (
	"gold_digger/internal/platform/externalapi/yahoo"
	infrahttp "gold_digger/internal/platform/http"
)

// NewProvider creates a Yahoo Finance client with its own HTTP client.
func NewProvider(cfg yahoo.Config) *yahoo.Client {
	cfg = cfg.WithDefaults()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return yahoo.NewClient(cfg, httpClient)
}
