package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store_sales/internal/config"
	"store_sales/internal/domain/sales"
)

// Integration tests chạy khi có POSTGRES_TEST=1 và database thật (.env ở project root).
func requireDB(t *testing.T) *config.Config {
	t.Helper()
	if os.Getenv("POSTGRES_TEST") != "1" {
		t.Skip("set POSTGRES_TEST=1 to run postgres integration tests")
	}
	cfg, err := config.Load()
	require.NoError(t, err, "load config failed")
	return cfg
}

func TestNewPool_WithEnv(t *testing.T) {
	cfg := requireDB(t)

	pool, err := NewPool(context.Background(), cfg.DB)
	require.NoError(t, err, "NewPool failed")
	require.NotNil(t, pool, "pool should not be nil")
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, pool.Ping(ctx), "ping database failed")
}

func TestPredictionRepository_SaveAndFind(t *testing.T) {
	cfg := requireDB(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, cfg.DB)
	require.NoError(t, err)
	defer pool.Close()

	repo := NewPredictionRepository(pool)
	size := "Small"
	p, err := sales.NewPrediction("test-"+time.Now().Format("150405.000000"), sales.RawItemRecord{
		ItemFatContent:          "Low Fat",
		ItemType:                "Dairy",
		ItemMRP:                 150,
		OutletEstablishmentYear: 2000,
		OutletSize:              &size,
		OutletLocationType:      "Tier 1",
		OutletType:              "Supermarket Type1",
	}, sales.FeatureVector{Columns: []string{"Item_MRP"}, Values: []float64{150}}, -3, time.Now())
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Record, got.Record)
	assert.Equal(t, p.Features, got.Features)
	assert.Equal(t, "$0.00", got.Sales.String())

	missing, err := repo.FindByID(ctx, "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
