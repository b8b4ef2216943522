package db

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gold_digger/internal/shared/record"
)

var (
	tableIdent = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)?$`)
	keyIdent   = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Store introspects tables and writes batches of records. All statements run
// on connections borrowed from the pool for the duration of one call.
type Store struct {
	db        *gorm.DB
	batchSize int
}

// NewStore wraps an open gorm handle. A non-positive batchSize selects
// DefaultBatchSize.
func NewStore(gdb *gorm.DB, batchSize int) *Store {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Store{db: gdb, batchSize: batchSize}
}

// Dialect returns the name of the active gorm dialector.
func (s *Store) Dialect() string {
	if s == nil || s.db == nil {
		return ""
	}
	return s.db.Dialector.Name()
}

// TableColumns returns the columns currently defined on table. A missing
// table, an invalid name or any driver error yields an empty set; the cause
// is logged. The result is read fresh on every call.
func (s *Store) TableColumns(ctx context.Context, table string) record.ColumnSet {
	cols := record.ColumnSet{}
	if s == nil || s.db == nil {
		log.Error().Err(errNoStore).Str("table", table).Msg("schema lookup skipped")
		return cols
	}
	if err := validateTable(table); err != nil {
		log.Error().Err(err).Str("table", table).Msg("schema lookup skipped")
		return cols
	}

	err := s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		m := conn.Migrator()
		if !m.HasTable(table) {
			return ErrTableNotFound
		}
		types, err := m.ColumnTypes(table)
		if err != nil {
			return err
		}
		for _, ct := range types {
			cols[ct.Name()] = struct{}{}
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("table", table).Msg("could not read table columns")
		return record.ColumnSet{}
	}
	return cols
}

func validateTable(table string) error {
	if !tableIdent.MatchString(table) {
		return fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}
	return nil
}

func validateKey(key string) error {
	if !keyIdent.MatchString(key) {
		return fmt.Errorf("%w: key column %q", ErrInvalidIdentifier, key)
	}
	return nil
}

// validateColumn accepts any name the dialect can quote safely.
func validateColumn(col string) error {
	if col == "" || !utf8.ValidString(col) || strings.ContainsAny(col, "`\"\x00") {
		return fmt.Errorf("%w: column %q", ErrInvalidIdentifier, col)
	}
	return nil
}
