package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"store_sales/internal/config"
	"store_sales/internal/domain/sales"
	"store_sales/pkg/logger"
)

// EventEncoder serializes a prediction into the wire payload (Avro).
type EventEncoder interface {
	EncodePrediction(p *sales.Prediction) ([]byte, error)
}

// recordProducer là phần của kgo.Client mà producer cần, để test không cần broker thật.
type recordProducer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type PredictionProducer struct {
	client  recordProducer
	encoder EventEncoder
	topic   string
	logger  logger.Logger
}

func NewPredictionProducer(cfg config.KafkaConfig, encoder EventEncoder, log logger.Logger) (*PredictionProducer, error) {
	log.Info("creating kafka producer",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.PredictionTopic),
	)

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.PredictionTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()), // Đợi tất cả ISR confirm
		kgo.DisableIdempotentWrite(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	// Connection chỉ được kiểm tra ở lần publish đầu tiên
	return &PredictionProducer{
		client:  client,
		encoder: encoder,
		topic:   cfg.PredictionTopic,
		logger:  log,
	}, nil
}

// PublishPrediction gửi prediction event, key là prediction ID để cùng ID vào cùng partition.
func (p *PredictionProducer) PublishPrediction(ctx context.Context, prediction *sales.Prediction) error {
	if prediction == nil {
		return fmt.Errorf("prediction is nil")
	}

	payload, err := p.encoder.EncodePrediction(prediction)
	if err != nil {
		return fmt.Errorf("encode prediction event: %w", err)
	}
	if len(payload) == 0 {
		return fmt.Errorf("payload is empty")
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(prediction.ID),
		Value:     payload,
		Timestamp: time.Now().UTC(),
		Headers: []kgo.RecordHeader{
			{Key: "content-type", Value: []byte("avro/binary")},
		},
	}

	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		p.logger.WithContext(ctx).Error("publish prediction failed",
			logger.String("topic", p.topic),
			logger.Int("payload_size", len(payload)),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.logger.WithContext(ctx).Debug("prediction published",
		logger.String("topic", p.topic),
		logger.String("prediction_id", prediction.ID),
	)
	return nil
}

func (p *PredictionProducer) Close(ctx context.Context) error {
	p.logger.Info("closing kafka producer", logger.String("topic", p.topic))
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
