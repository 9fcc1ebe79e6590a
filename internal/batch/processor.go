package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/enkooo/video-game-sales/internal/executor"
	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/rs/zerolog"
)

const (
	source         = "batch"
	defaultWorkers = 5
)

type Processor struct {
	executor *executor.Executor
	workers  int
	logger   *zerolog.Logger
}

func NewProcessor(exec *executor.Executor, workers int, logger *zerolog.Logger) *Processor {
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Processor{
		executor: exec,
		workers:  workers,
		logger:   logger,
	}
}

// RecordID names a batch record by its input line.
func RecordID(lineNumber int) string {
	return fmt.Sprintf("line-%d", lineNumber)
}

// Process validates records with a fixed pool of workers. Results arrive in
// completion order; the channel is closed once every worker is done or ctx is
// cancelled.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan models.ValidationResult {
	jobs := make(chan InputRecord)
	results := make(chan models.ValidationResult, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			p.work(ctx, worker, jobs, results)
		}(i)
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				p.logger.Warn().Int("line", record.LineNumber).Msg("Processing cancelled")
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) work(ctx context.Context, worker int, jobs <-chan InputRecord, results chan<- models.ValidationResult) {
	for record := range jobs {
		// Unparseable lines come back as invalid results.
		result := p.executor.Execute(source, models.ValidationRequest{
			RecordID: RecordID(record.LineNumber),
			Record:   record.Raw,
		})

		p.logger.Debug().
			Int("worker", worker).
			Int("line", record.LineNumber).
			Bool("valid", result.IsValid).
			Msg("Record processed")

		select {
		case results <- result:
		case <-ctx.Done():
			return
		}
	}
}
