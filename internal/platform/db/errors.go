package db

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConnection reports a missing or unusable database configuration or
	// connection. It is distinct from validation and statement failures.
	ErrConnection = errors.New("database connection error")

	// ErrStorage is matched by every *StorageError.
	ErrStorage = errors.New("storage execution error")

	// ErrInvalidIdentifier is returned for table or column names that cannot
	// be used safely as SQL identifiers.
	ErrInvalidIdentifier = errors.New("invalid sql identifier")

	// ErrTableNotFound is reported (and logged) by the schema introspector.
	ErrTableNotFound = errors.New("table not found")
)

// Error kinds reported by StorageError.Kind.
const (
	KindConstraint = "constraint"
	KindData       = "data"
	KindStatement  = "statement"
	KindConnection = "connection"
	KindExecution  = "execution"
)

// StorageError wraps a driver error raised while executing a statement.
type StorageError struct {
	Op    string
	Table string
	Kind  string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Table, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) hold for every StorageError.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func newStorageError(op, table string, err error) *StorageError {
	return &StorageError{Op: op, Table: table, Kind: classify(err), Err: err}
}

// classify maps driver errors onto a small set of kinds for logging.
func classify(err error) string {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062, 1048, 1451, 1452, 3819:
			return KindConstraint
		case 1264, 1265, 1292, 1366, 1406:
			return KindData
		case 1054, 1064, 1146:
			return KindStatement
		}
		return KindExecution
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			return KindConstraint
		case strings.HasPrefix(pgErr.Code, "22"):
			return KindData
		case strings.HasPrefix(pgErr.Code, "42"):
			return KindStatement
		case strings.HasPrefix(pgErr.Code, "08"):
			return KindConnection
		}
		return KindExecution
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return KindConnection
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "constraint"), strings.Contains(msg, "unique"):
		return KindConstraint
	case strings.Contains(msg, "syntax error"), strings.Contains(msg, "no such table"), strings.Contains(msg, "no such column"), strings.Contains(msg, "has no column"):
		return KindStatement
	}
	return KindExecution
}
