package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"store_sales/internal/application/prediction"
	"store_sales/internal/config"
	"store_sales/internal/domain/sales"
	"store_sales/internal/infrastructure/artifact"
	"store_sales/internal/infrastructure/encoding/avro"
	ginserver "store_sales/internal/infrastructure/http/gin"
	kafkainfra "store_sales/internal/infrastructure/messaging/kafka"
	"store_sales/internal/infrastructure/persistence/postgres"
	"store_sales/internal/interfaces/http/handler"
	"store_sales/internal/interfaces/http/router"
	"store_sales/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	appLog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer appLog.Sync()
	appLog = appLog.WithFields(logger.String("app", cfg.App.Name))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bundle, err := artifact.Load(cfg.Artifacts.Dir, appLog)
	if err != nil {
		var missing *sales.MissingArtifactError
		if errors.As(err, &missing) {
			appLog.Fatal("model artifacts not found, refusing to serve predictions",
				logger.String("dir", cfg.Artifacts.Dir),
				logger.Any("missing", missing.Names),
			)
		}
		appLog.Fatal("load artifacts failed", logger.Error(err))
	}

	opts := []prediction.Option{prediction.WithLogger(appLog)}

	if cfg.DB.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			appLog.Fatal("postgres connection failed", logger.Error(err))
		}
		defer pool.Close()
		opts = append(opts, prediction.WithRepository(postgres.NewPredictionRepository(pool)))
	}

	if cfg.Kafka.Enabled {
		encoder, err := avro.NewPredictionEncoder()
		if err != nil {
			appLog.Fatal("avro codec failed", logger.Error(err))
		}
		producer, err := kafkainfra.NewPredictionProducer(cfg.Kafka, encoder, appLog)
		if err != nil {
			appLog.Fatal("kafka producer failed", logger.Error(err))
		}
		defer producer.Close(context.Background())
		opts = append(opts, prediction.WithPublisher(producer))
	}

	predictionService := prediction.NewService(bundle.Pipeline, bundle.Model, opts...)

	if cfg.Kafka.Enabled {
		consumer := kafkainfra.NewRequestConsumer(cfg.Kafka, predictionService, appLog)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				appLog.Error("kafka consumer stopped", logger.Error(err))
			}
		}()
		defer consumer.Close()
	}

	predictionHandler := handler.NewPredictionHandler(predictionService, len(bundle.Pipeline.Columns()))
	engine := ginserver.NewEngine(appLog)
	router.RegisterRoutes(engine, predictionHandler)

	server := ginserver.NewServer(cfg.Server, engine)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLog.Error("server shutdown failed", logger.Error(err))
		}
	}()

	appLog.Info("http server listening", logger.String("addr", server.Addr()))
	if err := server.Run(); err != nil {
		appLog.Fatal("server run failed", logger.Error(err))
	}
}
