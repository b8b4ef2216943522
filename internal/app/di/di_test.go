package di

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold_digger/internal/feature/companies/usecase"
	"gold_digger/internal/platform/db"
	"gold_digger/internal/platform/externalapi/yahoo"
	"gold_digger/internal/platform/redis"
)

func TestNewStore_NoURL(t *testing.T) {
	t.Parallel()

	store, err := NewStore(db.Config{})
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNewStore_SQLite(t *testing.T) {
	t.Parallel()

	store, err := NewStore(db.Config{URL: "sqlite://:memory:"})
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })
	assert.Equal(t, "sqlite", store.Dialect())
}

func TestNewLedger_Disabled(t *testing.T) {
	t.Parallel()

	l := NewLedger(context.Background(), redis.Config{}, time.Hour)
	assert.False(t, l.Enabled())
}

func TestNewUsecases_NilStoreRejectsWrites(t *testing.T) {
	t.Parallel()

	uc := NewUsecases(NewProvider(yahoo.Config{BaseURL: "http://127.0.0.1:0"}), nil)
	_, err := uc.Companies.Add(context.Background(), "AAPL", false)
	assert.ErrorIs(t, err, usecase.ErrNoRepository)
}
