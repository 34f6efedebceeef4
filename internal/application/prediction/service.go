package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"store_sales/internal/domain/repository"
	"store_sales/internal/domain/sales"
	"store_sales/pkg/logger"
)

var ErrStorageDisabled = errors.New("prediction storage is disabled")

// Transformer builds the model input for a record. features.Pipeline implements it.
type Transformer interface {
	Transform(record sales.RawItemRecord, currentYear int) (sales.FeatureVector, error)
}

type Publisher interface {
	PublishPrediction(ctx context.Context, prediction *sales.Prediction) error
}

type Service struct {
	pipeline  Transformer
	model     sales.Regressor
	repo      repository.PredictionRepository
	publisher Publisher
	now       func() time.Time
	log       logger.Logger
}

type Option func(*Service)

func WithRepository(repo repository.PredictionRepository) Option {
	return func(s *Service) { s.repo = repo }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock overrides the wall clock; the current year feeds outlet age.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(pipeline Transformer, model sales.Regressor, opts ...Option) *Service {
	s := &Service{
		pipeline: pipeline,
		model:    model,
		now:      time.Now,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict validates and scores one record. Rejections (invalid input, unknown
// category) are returned as-is so callers can tell them apart with sales.IsRejected.
func (s *Service) Predict(ctx context.Context, record sales.RawItemRecord) (*sales.Prediction, error) {
	log := s.log.WithContext(ctx)

	if err := record.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	fv, err := s.pipeline.Transform(record, now.Year())
	if err != nil {
		return nil, fmt.Errorf("transform record: %w", err)
	}

	raw, err := s.model.Predict(fv)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	// Huge but finite inputs can still overflow the model.
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		log.Warn("non-finite model output", logger.String("item_type", record.ItemType), logger.Float64("item_mrp", record.ItemMRP))
		return nil, fmt.Errorf("predict: %w", sales.ErrNonFiniteOutput)
	}

	p, err := sales.NewPrediction(uuid.NewString(), record, fv, raw, now)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, p); err != nil {
			log.Error("save prediction failed", logger.String("prediction_id", p.ID), logger.Error(err))
			return nil, fmt.Errorf("save prediction: %w", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishPrediction(ctx, p); err != nil {
			log.Error("publish prediction failed", logger.String("prediction_id", p.ID), logger.Error(err))
			return nil, fmt.Errorf("publish prediction: %w", err)
		}
	}

	log.Info("prediction served",
		logger.String("prediction_id", p.ID),
		logger.String("item_type", record.ItemType),
		logger.String("outlet_type", record.OutletType),
		logger.Float64("raw_output", raw),
		logger.String("sales", p.Sales.String()),
	)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*sales.Prediction, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find prediction: %w", err)
	}
	if p == nil {
		return nil, sales.ErrPredictionNotFound
	}
	return p, nil
}

// HandleConsumedRequest scores a JSON record read from Kafka. Malformed or rejected
// requests are logged and skipped so one bad message never stops the consumer.
func (s *Service) HandleConsumedRequest(ctx context.Context, payload []byte) error {
	log := s.log.WithContext(ctx)

	var record sales.RawItemRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		log.Warn("skip malformed prediction request", logger.Int("size", len(payload)), logger.Error(err))
		return nil
	}

	if _, err := s.Predict(ctx, record); err != nil {
		if sales.IsRejected(err) {
			log.Warn("prediction request rejected", logger.Error(err))
			return nil
		}
		return err
	}
	return nil
}
