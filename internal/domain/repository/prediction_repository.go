package repository

import (
	"context"

	"store_sales/internal/domain/sales"
)

type PredictionRepository interface {
	Save(ctx context.Context, prediction *sales.Prediction) error
	FindByID(ctx context.Context, id string) (*sales.Prediction, error)
}
