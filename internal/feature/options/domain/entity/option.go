// Package entity defines the domain models for the options feature.
package entity

import (
	"fmt"
	"strings"

	"gold_digger/internal/shared/record"
)

// OptionClass selects one side of an option chain.
type OptionClass string

const (
	Puts  OptionClass = "puts"
	Calls OptionClass = "calls"
)

// AllClasses is the order in which both sides are scraped.
var AllClasses = []OptionClass{Puts, Calls}

// ParseOptionClass accepts "puts" or "calls" (case-insensitive).
func ParseOptionClass(s string) (OptionClass, error) {
	switch c := OptionClass(strings.ToLower(strings.TrimSpace(s))); c {
	case Puts, Calls:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q (want puts or calls)", record.ErrInvalidOptionClass, s)
}

// Valid reports whether c is puts or calls.
func (c OptionClass) Valid() bool { return c == Puts || c == Calls }

// Table returns the table contracts of this class are stored in.
func (c OptionClass) Table() string {
	if c == Puts {
		return "put_options"
	}
	return "call_options"
}

// Chain is one (expiration, class) slice of a ticker's option chain.
type Chain struct {
	Expiration string // YYYY-MM-DD
	Class      OptionClass
	Contracts  record.Table    // provider rows
	Records    []record.Record // normalised rows
	Rows       int64           // rows affected by the upsert
}

// Scrape is the outcome of scraping one ticker.
type Scrape struct {
	Ticker string
	Chains []Chain
}

// Counts returns the number of normalised contracts per expiration and class.
func (s Scrape) Counts() map[string]map[OptionClass]int {
	out := make(map[string]map[OptionClass]int, len(s.Chains))
	for _, c := range s.Chains {
		if out[c.Expiration] == nil {
			out[c.Expiration] = map[OptionClass]int{}
		}
		out[c.Expiration][c.Class] += len(c.Records)
	}
	return out
}

// Rows sums the affected rows of all chains.
func (s Scrape) Rows() int64 {
	var n int64
	for _, c := range s.Chains {
		n += c.Rows
	}
	return n
}
