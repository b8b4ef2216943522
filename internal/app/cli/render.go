package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"

	"gold_digger/internal/feature/options/domain/entity"
	"gold_digger/internal/platform/ledger"
	"gold_digger/internal/shared/ingest"
	"gold_digger/internal/shared/record"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failedStyle = cellStyle.Foreground(lipgloss.Color("#EF4444"))
)

type companyView struct {
	Ticker string         `json:"ticker"`
	Raw    map[string]any `json:"raw"`
	Record record.Record  `json:"record,omitempty"`
}

type historyView struct {
	Ticker  string          `json:"ticker"`
	Records []record.Record `json:"records"`
}

type chainView struct {
	Expiration string             `json:"expiration"`
	Class      entity.OptionClass `json:"class"`
	Contracts  []map[string]any   `json:"contracts"`
	Records    []record.Record    `json:"records,omitempty"`
}

type scrapeView struct {
	Ticker string      `json:"ticker"`
	Chains []chainView `json:"chains"`
}

func newScrapeView(s entity.Scrape) scrapeView {
	v := scrapeView{Ticker: s.Ticker, Chains: make([]chainView, 0, len(s.Chains))}
	for _, c := range s.Chains {
		v.Chains = append(v.Chains, chainView{
			Expiration: c.Expiration,
			Class:      c.Class,
			Contracts:  c.Contracts.Rows,
			Records:    c.Records,
		})
	}
	return v
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) echoJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dry run output: %w", err)
	}
	_, err = fmt.Fprintf(a.out, "%s\n", b)
	return err
}

// printFields writes "  key: value" lines in key order.
func printFields(w io.Writer, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %v\n", k, formatValue(fields[k]))
	}
}

func formatValue(v any) any {
	switch t := v.(type) {
	case nil:
		return "null"
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339)
	}
	return v
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)
}

// renderResults prints one row per ticker and entity.
func renderResults(w io.Writer, results []ingest.Result) {
	if len(results) == 0 {
		return
	}
	t := newTable("TICKER", "ENTITY", "STATUS", "ROWS", "ERROR")
	for _, r := range results {
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		t.Row(r.Ticker, string(r.Entity), string(r.Status), strconv.FormatInt(r.Rows, 10), msg)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row >= 0 && row < len(results) && results[row].Failed():
			return failedStyle
		}
		return cellStyle
	})
	fmt.Fprintln(w, t.Render())
}

// renderEntries prints ledger entries.
func renderEntries(w io.Writer, entries []ledger.Entry) {
	t := newTable("TICKER", "ENTITY", "STATUS", "ROWS", "FINISHED", "RUN", "ERROR")
	for _, e := range entries {
		t.Row(e.Ticker, string(e.Entity), string(e.Status), strconv.FormatInt(e.Rows, 10),
			e.FinishedAt.Format(time.RFC3339), e.RunID, e.Error)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row >= 0 && row < len(entries) && entries[row].Status == ingest.StatusFailed:
			return failedStyle
		}
		return cellStyle
	})
	fmt.Fprintln(w, t.Render())
}
