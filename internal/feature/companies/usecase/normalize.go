package usecase

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"gold_digger/internal/shared/fieldmap"
	"gold_digger/internal/shared/record"
)

// NaturalKey is the column that identifies a company row.
const NaturalKey = "symbol"

// Normalize turns a provider profile into a companies row:
//
//	null values and composite values (maps, slices) are dropped,
//	field names go through mapper,
//	only columns present in schema are kept,
//	JSON numbers become int64 when integral and float64 otherwise.
//
// A result without columns fails with record.ErrNoPersistableFields, one
// without a symbol with record.ErrMissingNaturalKey.
func Normalize(raw map[string]any, schema record.ColumnSet, mapper fieldmap.Mapper) (record.Record, error) {
	if len(raw) == 0 {
		return nil, record.ErrEmptyInput
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mapped := make(record.Record, len(raw))
	for _, k := range keys {
		v := raw[k]
		if record.IsMissing(v) {
			continue
		}
		if record.IsComposite(v) {
			log.Debug().Str("field", k).Msg("skipping composite company field")
			continue
		}
		mapped[mapper.Map(k)] = record.Scalar(v)
	}

	out := record.Project(mapped, schema)
	if len(out) == 0 {
		return nil, record.ErrNoPersistableFields
	}
	if record.IsMissing(out[NaturalKey]) {
		return nil, fmt.Errorf("%w: %s", record.ErrMissingNaturalKey, NaturalKey)
	}
	return out, nil
}
