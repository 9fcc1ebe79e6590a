package executor

import (
	"time"

	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks . RecordValidator,Recorder

// RecordValidator checks a raw JSON record against the game schema
type RecordValidator interface {
	ValidateJSON(data []byte) models.ValidationOutcome
}

// Recorder observes validation outcomes
type Recorder interface {
	ObserveValidation(source string, valid bool, d time.Duration)
}

type Executor struct {
	validator RecordValidator
	recorder  Recorder
	logger    *zerolog.Logger
	now       func() time.Time
}

func NewExecutor(validator RecordValidator, recorder Recorder, logger *zerolog.Logger) *Executor {
	return &Executor{
		validator: validator,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute validates one request on behalf of source (api, mcp, redis, kafka,
// batch) and returns the result every surface emits.
func (e *Executor) Execute(source string, req models.ValidationRequest) models.ValidationResult {
	id := req.RecordID
	if id == "" {
		id = uuid.NewString()
	}

	start := e.now()
	outcome := e.validator.ValidateJSON(req.Record)
	elapsed := e.now().Sub(start)

	if e.recorder != nil {
		e.recorder.ObserveValidation(source, outcome.IsValid, elapsed)
	}

	event := e.logger.Info()
	if !outcome.IsValid {
		event = e.logger.Warn().Str("reason", outcome.Message)
	}
	event.
		Str("record_id", id).
		Str("source", source).
		Bool("valid", outcome.IsValid).
		Dur("duration", elapsed).
		Msg("record validated")

	return models.ValidationResult{
		RecordID:    id,
		IsValid:     outcome.IsValid,
		Message:     outcome.Message,
		Source:      source,
		ValidatedAt: start.UTC(),
	}
}
