package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/enkooo/video-game-sales/internal/batch"
	"github.com/enkooo/video-game-sales/internal/setup"
	"github.com/enkooo/video-game-sales/internal/setup/logger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

func main() {
	startTime := time.Now()

	input := flag.String("input", "", "Input JSONL file path, or '-' for stdin")
	output := flag.String("output", "", "Output file path (default stdout)")
	format := flag.String("format", batch.FormatJSONL, "Output format. Supported formats: 'jsonl', 'summary'")
	summary := flag.String("summary", "", "Optional separate summary file")
	workers := flag.Int("workers", 0, "Concurrent validation workers (default from service config)")
	continueOnError := flag.Bool("continue-on-error", true, "Continue on unreadable lines and write failures")
	dryRun := flag.Bool("dry-run", false, "Check that every line is JSON without validating")
	failOnInvalid := flag.Bool("fail-on-invalid", false, "Exit with status 1 when any record is invalid")

	flag.Parse()

	envErr := godotenv.Load()
	cfg := setup.LoadConfig()

	log.Logger = logger.New(cfg.LogLevel, cfg.LogPretty)
	logger := log.Logger

	if *input == "" {
		log.Fatal().Msg("required flag -input not provided")
	}
	formatValidator(format)

	if envErr != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, cancel := setupGracefulShutdown()
	defer cancel()

	deps, err := setup.Wire(cfg, &logger, prometheus.NewRegistry())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Open input file
	var inputFile io.Reader
	if *input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("Reading from stdin")
	} else {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Str("file", *input).Msg("Failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", *input).Msg("Reading input file")
	}

	// Read records
	reader := batch.NewReader(inputFile, deps.Logger)
	recordsCh := reader.ReadAll(ctx)

	var records []batch.InputRecord
	readErrors := 0
	for record := range recordsCh {
		if record.Error != nil {
			readErrors++
			log.Error().Int("line", record.LineNumber).Err(record.Error).Msg("Unreadable line")
			if !*continueOnError && !*dryRun {
				log.Fatal().Msg("Stopping due to unreadable line")
			}
		}
		records = append(records, record)
	}

	log.Info().Int("total", len(records)).Int("errors", readErrors).Msg("Input file parsed")

	// Dry run check
	if *dryRun {
		dryRunAndExit(readErrors)
	}

	// Open output file
	var outputFile io.Writer
	if *output == "" {
		outputFile = os.Stdout
		log.Info().Msg("Writing to stdout")
	} else {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("file", *output).Msg("Failed to create output file")
		}
		defer f.Close()
		outputFile = f
		log.Info().Str("file", *output).Msg("Writing to output file")
	}

	// Create writer
	writer, err := batch.NewWriter(outputFile, *format, deps.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create writer")
	}

	workerCount := *workers
	if workerCount <= 0 {
		workerCount = deps.Service.Batch.Workers
	}

	// Process with worker pool
	processor := batch.NewProcessor(deps.Executor, workerCount, deps.Logger)
	results := processor.Process(ctx, records)

	// Write results
	writeErrors := 0
	for result := range results {
		if err := writer.Write(result); err != nil {
			log.Error().Err(err).Str("record_id", result.RecordID).Msg("Failed to write result")
			writeErrors++

			if !*continueOnError {
				log.Fatal().Msg("Stopping due to write error")
			}
		}
	}

	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close writer")
	}

	stats := writer.Summary()
	log.Info().
		Int("total", stats.Total).
		Int("valid", stats.Valid).
		Int("invalid", stats.Invalid).
		Int("write_errors", writeErrors).
		Int("workers", workerCount).
		Dur("duration", time.Since(startTime)).
		Msg("Processing complete")

	if *summary != "" {
		writeSummary(*summary, stats)
	}

	if *failOnInvalid && stats.Invalid > 0 {
		log.Error().Int("invalid", stats.Invalid).Msg("Invalid records found")
		os.Exit(1)
	}

	log.Info().Msg("Batch processing complete")
}

func setupGracefulShutdown() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Warn().Msg("Received interrupt signal, finishing current work...")
		cancel()
	}()

	return ctx, cancel
}

func formatValidator(format *string) {
	validFormats := map[string]bool{batch.FormatJSONL: true, batch.FormatSummary: true}
	if !validFormats[*format] {
		log.Fatal().
			Str("format", *format).
			Msg("Invalid format. Supported: jsonl, summary")
	}
}

func writeSummary(path string, stats batch.Summary) {
	summaryFile, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to create summary file")
	}
	defer summaryFile.Close()

	if err := batch.WriteSummary(summaryFile, stats); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to write summary")
	}
	log.Info().Str("file", path).Msg("Summary written")
}

func dryRunAndExit(errorCount int) {
	if errorCount > 0 {
		log.Fatal().Int("errors", errorCount).Msg("Dry run failed")
	}

	log.Info().Msg("Dry run successful")
	os.Exit(0)
}
