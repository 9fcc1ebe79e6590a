package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/enkooo/video-game-sales/internal/batch"
	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/enkooo/video-game-sales/internal/setup"
	"github.com/enkooo/video-game-sales/internal/setup/logger"
	"github.com/enkooo/video-game-sales/internal/stream"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errNotJSON = errors.New("record is not valid JSON")

func main() {
	data := flag.String("d", "", "Inline JSON game record")
	file := flag.String("file", "", "JSONL file with one game record per line")
	recordID := flag.String("id", "", "Record id for -d (generated when empty)")
	provider := flag.String("provider", "", "Stream provider: redis or kafka (default from config)")
	flag.Parse()

	if (*data == "") == (*file == "") {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>' | -file records.jsonl [-provider redis|kafka]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := setup.LoadConfig()
	if *provider != "" {
		cfg.StreamProvider = *provider
	}

	log.Logger = logger.New(cfg.LogLevel, cfg.LogPretty)
	logger := log.Logger

	if err := run(cfg, *data, *file, *recordID, &logger); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(cfg *setup.Config, data, file, recordID string, logger *zerolog.Logger) error {
	serviceCfg, err := setup.LoadService(cfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	publisher, err := stream.NewPublisher(ctx, setup.StreamConfig(cfg, serviceCfg), logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	if data != "" {
		req, err := newRequest(recordID, []byte(data))
		if err != nil {
			return err
		}

		id, err := publisher.Publish(ctx, req)
		if err != nil {
			return err
		}

		log.Info().
			Str("provider", serviceCfg.Stream.Provider).
			Str("id", id).
			Str("record_id", req.RecordID).
			Msg("Published successfully!")
		return nil
	}

	return publishFile(ctx, publisher, file, logger)
}

func publishFile(ctx context.Context, publisher stream.Publisher, path string, logger *zerolog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	published, skipped := 0, 0
	for record := range batch.NewReader(f, logger).ReadAll(ctx) {
		if record.Error != nil {
			log.Warn().Err(record.Error).Int("line", record.LineNumber).Msg("Skipping line")
			skipped++
			continue
		}

		req, err := newRequest(batch.RecordID(record.LineNumber), record.Raw)
		if err != nil {
			return err
		}

		if _, err := publisher.Publish(ctx, req); err != nil {
			return fmt.Errorf("line %d: %w", record.LineNumber, err)
		}
		published++
	}

	log.Info().Str("file", path).Int("published", published).Int("skipped", skipped).Msg("Published file")
	return nil
}

func newRequest(recordID string, raw []byte) (models.ValidationRequest, error) {
	if !json.Valid(raw) {
		return models.ValidationRequest{}, errNotJSON
	}
	if recordID == "" {
		recordID = uuid.NewString()
	}

	return models.ValidationRequest{
		RecordID: recordID,
		Record:   json.RawMessage(raw),
	}, nil
}
