// Package ingest describes the per-ticker outcome of a fetch-normalise-upsert run.
package ingest

import (
	"errors"
	"time"

	"gold_digger/internal/shared/record"
)

// Entity names the kind of data an outcome refers to.
type Entity string

const (
	EntityCompany Entity = "company"
	EntityPrices  Entity = "prices"
	EntityOptions Entity = "options"
)

// Status of one ticker within a run.
type Status string

const (
	StatusOK     Status = "ok"
	StatusNoData Status = "no_data"
	StatusDryRun Status = "dry_run"
	StatusFailed Status = "failed"
)

// Result is the outcome of one ticker for one entity.
type Result struct {
	Entity     Entity
	Ticker     string
	Status     Status
	Rows       int64
	Err        error
	FinishedAt time.Time

	// Detail carries the fetched and normalised data for dry runs.
	Detail any
}

// NewResult derives the status from err, rows and dryRun.
func NewResult(entity Entity, ticker string, rows int64, dryRun bool, err error) Result {
	r := Result{Entity: entity, Ticker: ticker, Rows: rows, Err: err, FinishedAt: time.Now().UTC()}
	switch {
	case err != nil && errors.Is(err, record.ErrNoData):
		r.Status = StatusNoData
		r.Err = nil
	case err != nil:
		r.Status = StatusFailed
	case dryRun:
		r.Status = StatusDryRun
	default:
		r.Status = StatusOK
	}
	return r
}

// Failed reports whether the ticker failed.
func (r Result) Failed() bool { return r.Status == StatusFailed }

// Failures counts failed results.
func Failures(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// AllFailed reports whether results is non-empty and every entry failed.
func AllFailed(results []Result) bool {
	return len(results) > 0 && Failures(results) == len(results)
}
