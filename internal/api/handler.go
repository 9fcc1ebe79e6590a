package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/enkooo/video-game-sales/internal/api/middleware"
	"github.com/enkooo/video-game-sales/internal/executor"
	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/rs/zerolog"
)

const (
	Version = "1.0.0"
	source  = "api"
)

var ErrNotAnArray = errors.New("request body must be a JSON array of records")

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	executor     *executor.Executor
	schema       json.RawMessage
	maxBodyBytes int64
	logger       *zerolog.Logger
}

func NewHandler(executor *executor.Executor, schema json.RawMessage, maxBodyBytes int64, logger *zerolog.Logger) *Handler {
	return &Handler{
		executor:     executor,
		schema:       schema,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// POST /api/v1/validate
// Body: any JSON value, checked as a game record
// Returns: ValidationResult (200 valid, 422 invalid)
func (h *Handler) Validate(req *restful.Request, resp *restful.Response) {
	body, err := h.readBody(req, resp)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result := h.executor.Execute(source, models.ValidationRequest{
		RecordID: req.QueryParameter("record_id"),
		Record:   body,
	})

	status := http.StatusOK
	if !result.IsValid {
		status = http.StatusUnprocessableEntity
	}

	h.writeEntity(resp, status, result)
}

// POST /api/v1/validate/batch
// Body: JSON array of records
// Returns: []ValidationResult in input order
func (h *Handler) ValidateBatch(req *restful.Request, resp *restful.Response) {
	body, err := h.readBody(req, resp)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	records, err := decodeArray(body)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Batch body is not an array")
		middleware.HandleError(resp, ErrNotAnArray, http.StatusBadRequest)
		return
	}

	results := make([]models.ValidationResult, 0, len(records))
	valid := 0
	for _, record := range records {
		result := h.executor.Execute(source, models.ValidationRequest{Record: record})
		if result.IsValid {
			valid++
		}
		results = append(results, result)
	}

	h.logger.Info().
		Int("total", len(results)).
		Int("valid", valid).
		Msg("Batch validation complete")

	h.writeEntity(resp, http.StatusOK, results)
}

// GET /api/v1/schema
func (h *Handler) Schema(req *restful.Request, resp *restful.Response) {
	h.writeEntity(resp, http.StatusOK, h.schema)
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	h.writeEntity(resp, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// decodeArray splits a JSON array into its raw elements. Anything else,
// including null, is rejected.
func decodeArray(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotAnArray
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnArray, err)
	}

	return records, nil
}

func (h *Handler) readBody(req *restful.Request, resp *restful.Response) ([]byte, error) {
	body := req.Request.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(resp.ResponseWriter, body, h.maxBodyBytes)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	return data, nil
}

func (h *Handler) writeEntity(resp *restful.Response, status int, entity any) {
	if err := resp.WriteHeaderAndEntity(status, entity); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write response")
	}
}
