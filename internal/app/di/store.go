package di

import (
	"gold_digger/internal/platform/db"
)

// NewStore opens the database. Without a DATABASE_URL it returns a nil
// store, which the usecases accept for dry runs only.
func NewStore(cfg db.Config) (*db.Store, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	return db.Open(cfg)
}
