package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// GameRecord is one video-game sales entry.
type GameRecord struct {
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	Platform    string  `json:"platform"`
	Year        string  `json:"year"`
	Genre       string  `json:"genre"`
	Publisher   string  `json:"publisher"`
	NASales     float64 `json:"na_sales"`
	EUSales     float64 `json:"eu_sales"`
	JPSales     float64 `json:"jp_sales"`
	OtherSales  float64 `json:"other_sales"`
	GlobalSales float64 `json:"global_sales"`
}

type ValidationOutcome struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// Input message

type ValidationRequest struct {
	RecordID string          `json:"record_id,omitempty"`
	Record   json.RawMessage `json:"record"`
}

// Output emitted by every surface
type ValidationResult struct {
	RecordID    string    `json:"record_id"`
	IsValid     bool      `json:"isValid"`
	Message     string    `json:"message"`
	Source      string    `json:"source"`
	ValidatedAt time.Time `json:"validated_at"`
}

var ErrInvalidEnvelope = errors.New("invalid validation request envelope")

// DecodeRequest decodes a stream payload into a ValidationRequest. The payload
// must be a JSON object; the record inside it is left raw for the validator.
func DecodeRequest(payload []byte) (ValidationRequest, error) {
	var req ValidationRequest

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return req, ErrInvalidEnvelope
	}

	if err := json.Unmarshal(trimmed, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	return req, nil
}
