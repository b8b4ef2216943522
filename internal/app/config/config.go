// Package config loads application settings from the environment, an optional
// .env file and an optional TOML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"gold_digger/internal/platform/db"
	"gold_digger/internal/platform/externalapi/yahoo"
	"gold_digger/internal/platform/redis"
)

// Environment keys.
const (
	KeyDatabaseURL      = "DATABASE_URL"
	KeyDBBatchSize      = "DB_BATCH_SIZE"
	KeyDBMaxOpenConns   = "DB_MAX_OPEN_CONNS"
	KeyDBConnectTimeout = "DB_CONNECT_TIMEOUT"
	KeyDBLogLevel       = "DB_LOG_LEVEL"
	KeyYahooBaseURL     = "YAHOO_BASE_URL"
	KeyYahooCookieURL   = "YAHOO_COOKIE_URL"
	KeyYahooCrumb       = "YAHOO_CRUMB"
	KeyYahooUserAgent   = "YAHOO_USER_AGENT"
	KeyYahooTimeout     = "YAHOO_TIMEOUT"
	KeyYahooRPM         = "YAHOO_REQUESTS_PER_MINUTE"
	KeyRedisHost        = "REDIS_HOST"
	KeyRedisPort        = "REDIS_PORT"
	KeyRedisPassword    = "REDIS_PASSWORD"
	KeyRedisDB          = "REDIS_DB"
	KeyLedgerTTL        = "LEDGER_TTL"
	KeyLogLevel         = "LOG_LEVEL"
)

const (
	defaultConfigName = ".golddigger"
	defaultLedgerTTL  = 30 * 24 * time.Hour
)

// Config is the complete application configuration.
type Config struct {
	DB        db.Config
	Yahoo     yahoo.Config
	Redis     redis.Config
	LedgerTTL time.Duration
	LogLevel  string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDBBatchSize, db.DefaultBatchSize)
	v.SetDefault(KeyDBMaxOpenConns, 4)
	v.SetDefault(KeyDBConnectTimeout, time.Duration(0))
	v.SetDefault(KeyDBLogLevel, "warn")
	v.SetDefault(KeyYahooBaseURL, yahoo.DefaultBaseURL)
	v.SetDefault(KeyYahooCookieURL, yahoo.DefaultCookieURL)
	v.SetDefault(KeyYahooUserAgent, yahoo.DefaultUserAgent)
	v.SetDefault(KeyYahooTimeout, 15*time.Second)
	v.SetDefault(KeyYahooRPM, yahoo.DefaultRequestsPerMinute)
	v.SetDefault(KeyRedisPort, "6379")
	v.SetDefault(KeyLedgerTTL, defaultLedgerTTL)
	v.SetDefault(KeyLogLevel, "info")
}

// Init prepares v: .env is loaded into the process environment, defaults
// are registered, environment variables are bound, and the config file is
// read if present. cfgFile overrides the default $HOME/.golddigger.toml.
func Init(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg(".env not found; using system environment variables")
	}

	SetDefaults(v)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigType("toml")
		v.SetConfigName(defaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	log.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	return nil
}

// Load builds a Config from v.
func Load(v *viper.Viper) Config {
	return Config{
		DB: db.Config{
			URL:            v.GetString(KeyDatabaseURL),
			BatchSize:      v.GetInt(KeyDBBatchSize),
			MaxOpenConns:   v.GetInt(KeyDBMaxOpenConns),
			LogLevel:       v.GetString(KeyDBLogLevel),
			ConnectTimeout: v.GetDuration(KeyDBConnectTimeout),
		},
		Yahoo: yahoo.Config{
			BaseURL:           v.GetString(KeyYahooBaseURL),
			CookieURL:         v.GetString(KeyYahooCookieURL),
			Crumb:             v.GetString(KeyYahooCrumb),
			UserAgent:         v.GetString(KeyYahooUserAgent),
			Timeout:           v.GetDuration(KeyYahooTimeout),
			RequestsPerMinute: v.GetInt(KeyYahooRPM),
		},
		Redis: redis.Config{
			Host:     v.GetString(KeyRedisHost),
			Port:     v.GetString(KeyRedisPort),
			Password: v.GetString(KeyRedisPassword),
			DB:       v.GetInt(KeyRedisDB),
		},
		LedgerTTL: v.GetDuration(KeyLedgerTTL),
		LogLevel:  v.GetString(KeyLogLevel),
	}
}

// HasDatabase reports whether a database URL is configured.
func (c Config) HasDatabase() bool { return c.DB.URL != "" }
