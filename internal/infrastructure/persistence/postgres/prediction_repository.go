package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"store_sales/internal/domain/sales"
)

type PredictionRepository struct {
	pool *pgxpool.Pool

	mu    sync.Mutex
	ready bool
}

func NewPredictionRepository(pool *pgxpool.Pool) *PredictionRepository {
	return &PredictionRepository{pool: pool}
}

type featureColumns struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
}

func (r *PredictionRepository) Save(ctx context.Context, p *sales.Prediction) error {
	if p == nil {
		return fmt.Errorf("prediction is nil")
	}

	const query = `
		INSERT INTO predictions (id, item_type, outlet_type, record, features, raw_output, sales, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET item_type = EXCLUDED.item_type,
			outlet_type = EXCLUDED.outlet_type,
			record = EXCLUDED.record,
			features = EXCLUDED.features,
			raw_output = EXCLUDED.raw_output,
			sales = EXCLUDED.sales,
			created_at = EXCLUDED.created_at;
	`

	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	record, err := json.Marshal(p.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	features, err := json.Marshal(featureColumns{Columns: p.Features.Columns, Values: p.Features.Values})
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.Record.ItemType,
		p.Record.OutletType,
		record,
		features,
		p.RawOutput,
		p.Sales.Float64(),
		p.CreatedAt,
	)
	return err
}

func (r *PredictionRepository) FindByID(ctx context.Context, id string) (*sales.Prediction, error) {
	const query = `
		SELECT id, record, features, raw_output, created_at
		FROM predictions
		WHERE id = $1;
	`
	var (
		p        sales.Prediction
		record   []byte
		features []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&record,
		&features,
		&p.RawOutput,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(record, &p.Record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	var fc featureColumns
	if err := json.Unmarshal(features, &fc); err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	p.Features = sales.FeatureVector{Columns: fc.Columns, Values: fc.Values}
	p.Sales = sales.NewAmount(p.RawOutput)
	return &p, nil
}

func (r *PredictionRepository) ensureTable(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS predictions (
			id TEXT PRIMARY KEY,
			item_type TEXT NOT NULL,
			outlet_type TEXT NOT NULL,
			record JSONB NOT NULL,
			features JSONB NOT NULL,
			raw_output DOUBLE PRECISION NOT NULL,
			sales NUMERIC(12, 2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready {
		return nil
	}
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("ensure predictions table: %w", err)
	}
	r.ready = true
	return nil
}
