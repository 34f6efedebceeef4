package batch

import (
	"context"
	"fmt"
	"time"

	"store_sales/internal/domain/sales"
	"store_sales/internal/infrastructure/worker"
	"store_sales/pkg/logger"
)

// RecordSource abstract nguồn dữ liệu (CSV, ...) để dễ test.
type RecordSource interface {
	ReadRecords(ctx context.Context) ([]sales.RawItemRecord, error)
}

// Predictor is satisfied by prediction.Service.
type Predictor interface {
	Predict(ctx context.Context, record sales.RawItemRecord) (*sales.Prediction, error)
}

// RowResult is the outcome of one input row. Exactly one of Prediction and Err is set.
type RowResult struct {
	Row        int
	Prediction *sales.Prediction
	Err        error
}

type Service struct {
	source    RecordSource
	predictor Predictor
	workers   int
	queueSize int
	log       logger.Logger
}

func NewService(source RecordSource, predictor Predictor, workers, queueSize int, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		source:    source,
		predictor: predictor,
		workers:   workers,
		queueSize: queueSize,
		log:       log,
	}
}

// Run scores every record from the source and returns results in input order.
// A failing row is reported on that row only.
func (s *Service) Run(ctx context.Context) ([]RowResult, error) {
	records, err := s.source.ReadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	results := make([]RowResult, len(records))
	if len(records) == 0 {
		return results, nil
	}

	start := time.Now()
	pool := worker.NewPool(ctx, s.workers, s.queueSize, s.predictor.Predict)
	pool.Start()

	go func() {
		defer pool.Stop()
		for i, rec := range records {
			if err := pool.Submit(&worker.Job{ID: i, Record: rec}); err != nil {
				return
			}
		}
	}()

	done := make([]bool, len(records))
	failed := 0
	for res := range pool.Results() {
		done[res.JobID] = true
		results[res.JobID] = RowResult{Row: res.JobID, Prediction: res.Prediction, Err: res.Error}
		if res.Error != nil {
			failed++
			s.log.Warn("batch row failed", logger.Int("row", res.JobID), logger.Error(res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		for i := range results {
			if !done[i] {
				results[i] = RowResult{Row: i, Err: err}
			}
		}
		return results, err
	}

	s.log.Info("batch scored",
		logger.Int("rows", len(records)),
		logger.Int("failed", failed),
		logger.String("elapsed", time.Since(start).String()),
	)
	return results, nil
}
