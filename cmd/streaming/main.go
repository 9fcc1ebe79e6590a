package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/enkooo/video-game-sales/internal/setup"
	"github.com/enkooo/video-game-sales/internal/setup/logger"
	"github.com/enkooo/video-game-sales/internal/stream"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg := setup.LoadConfig()

	// Setup logging
	log.Logger = logger.New(cfg.LogLevel, cfg.LogPretty)
	logger := log.Logger

	if envErr != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps, err := setup.Wire(cfg, &logger, prometheus.NewRegistry())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	consumer, err := stream.NewStreamConsumer(ctx, setup.StreamConfig(cfg, deps.Service), deps.Executor, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	// Setup consumer
	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	// Start consumer
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Consumer stopped with error")
			cancel()
		}
	}()

	// Wait for context to be done
	<-ctx.Done()
	logger.Info().Msg("Shutting down...")
	<-done

	if err := consumer.Stop(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop consumer")
	}

	log.Info().Str("provider", deps.Service.Stream.Provider).Msg("Validator consumer stopped")
}
