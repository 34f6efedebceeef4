package kafka

import (
	"context"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"store_sales/internal/config"
	"store_sales/pkg/logger"
)

// RequestHandler xử lý một prediction request (JSON RawItemRecord).
type RequestHandler interface {
	HandleConsumedRequest(ctx context.Context, payload []byte) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type RequestConsumer struct {
	reader  messageReader
	handler RequestHandler
	logger  logger.Logger
}

func NewRequestConsumer(cfg config.KafkaConfig, handler RequestHandler, log logger.Logger) *RequestConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.RequestTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &RequestConsumer{
		reader:  reader,
		handler: handler,
		logger:  log,
	}
}

// Start đọc messages cho tới khi ctx bị cancel. Message chỉ được commit sau khi
// handler xử lý xong; request bị reject được handler bỏ qua nên vẫn commit.
func (c *RequestConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := c.handler.HandleConsumedRequest(ctx, msg.Value); err != nil {
			c.logger.Error("handle prediction request failed",
				logger.String("topic", msg.Topic),
				logger.Int("partition", msg.Partition),
				logger.Int64("offset", msg.Offset),
				logger.Error(err),
			)
			return fmt.Errorf("handle request: %w", err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit message: %w", err)
		}
	}
}

func (c *RequestConsumer) Close() {
	_ = c.reader.Close()
}
