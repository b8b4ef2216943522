package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gold_digger/internal/shared/record"
)

func TestParseOptionClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in        string
		want      OptionClass
		wantTable string
		wantErr   bool
	}{
		{in: "puts", want: Puts, wantTable: "put_options"},
		{in: " CALLS ", want: Calls, wantTable: "call_options"},
		{in: "straddle", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseOptionClass(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, record.ErrInvalidOptionClass)
				assert.ErrorIs(t, err, record.ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTable, got.Table())
		})
	}
}

func TestScrape_Counts(t *testing.T) {
	t.Parallel()

	s := Scrape{Chains: []Chain{
		{Expiration: "2024-01-19", Class: Puts, Records: make([]record.Record, 3), Rows: 3},
		{Expiration: "2024-01-19", Class: Calls, Records: make([]record.Record, 2), Rows: 2},
		{Expiration: "2024-01-26", Class: Puts},
	}}

	assert.Equal(t, map[string]map[OptionClass]int{
		"2024-01-19": {Puts: 3, Calls: 2},
		"2024-01-26": {Puts: 0},
	}, s.Counts())
	assert.Equal(t, int64(5), s.Rows())
}
