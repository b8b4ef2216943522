package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Opener opens a gorm handle for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// Open connects to the database named by cfg.URL and returns a Store.
func Open(cfg Config) (*Store, error) {
	dialect, dsn, err := NormalizeURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{
		Logger:                 newGormLogger(cfg.LogLevel),
		SkipDefaultTransaction: true,
	}
	opener := func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialector(dialect, dsn), gcfg)
	}

	gdb, err := ConnectWithRetry(dsn, cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrConnection, dialect, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrConnection, dialect, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if dialect == DialectSQLite {
		// sqlite serialises writers; one connection also keeps :memory: databases shared.
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info().Str("dialect", string(dialect)).Msg("database connected")
	return NewStore(gdb, cfg.BatchSize), nil
}

func dialector(d Dialect, dsn string) gorm.Dialector {
	switch d {
	case DialectPostgres:
		return postgres.Open(dsn)
	case DialectSQLite:
		return sqlite.Open(dsn)
	default:
		return gmysql.Open(dsn)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout has elapsed.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := opener(dsn)
		if err == nil {
			return gdb, nil
		}
		if !time.Now().Add(retryInterval).Before(deadline) {
			return nil, err
		}
		log.Warn().Err(err).Dur("retry_in", retryInterval).Msg("database connect failed, retrying")
		time.Sleep(retryInterval)
	}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newGormLogger routes gorm's statement log through zerolog.
func newGormLogger(level string) logger.Interface {
	return logger.New(gormWriter{}, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLogLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	log.WithLevel(zerolog.WarnLevel).Str("component", "gorm").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

var errNoStore = errors.New("store is not initialised")
