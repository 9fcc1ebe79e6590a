package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/xeipuuv/gojsonschema"
)

const (
	SuccessMessage  = "Game has been validated successfully"
	FallbackMessage = "Validation failed"

	rootField              = "(root)"
	defaultField           = "field"
	additionalPropertyType = "additional_property_not_allowed"
)

// RecordValidator checks game records against the compiled game schema.
// It holds no mutable state and is safe for concurrent use.
type RecordValidator struct {
	schema *gojsonschema.Schema
}

func New() (*RecordValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(gameSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile game schema: %w", err)
	}

	return &RecordValidator{schema: schema}, nil
}

// Validate checks an in-memory value. Any value is accepted; values that are
// not objects produce a failure outcome.
func (v *RecordValidator) Validate(record any) models.ValidationOutcome {
	return v.validate(gojsonschema.NewGoLoader(record))
}

// ValidateJSON checks a raw JSON document.
func (v *RecordValidator) ValidateJSON(data []byte) models.ValidationOutcome {
	return v.validate(gojsonschema.NewBytesLoader(data))
}

// Schema returns the schema document the validator was compiled from.
func (v *RecordValidator) Schema() json.RawMessage {
	return json.RawMessage(gameSchema)
}

func (v *RecordValidator) validate(document gojsonschema.JSONLoader) models.ValidationOutcome {
	result, err := v.schema.Validate(document)
	if err != nil {
		return models.ValidationOutcome{
			IsValid: false,
			Message: fmt.Sprintf("%s: %v", FallbackMessage, err),
		}
	}

	if result.Valid() {
		return models.ValidationOutcome{
			IsValid: true,
			Message: SuccessMessage,
		}
	}

	return models.ValidationOutcome{
		IsValid: false,
		Message: formatErrors(result.Errors()),
	}
}

func formatErrors(errs []gojsonschema.ResultError) string {
	if len(errs) == 0 {
		return FallbackMessage
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldName(e), e.Description()))
	}

	return strings.Join(messages, ", ")
}

// fieldName resolves the property an error refers to: the instance path, then
// the offending additional property, then a generic placeholder.
func fieldName(e gojsonschema.ResultError) string {
	if field := e.Field(); field != "" && field != rootField {
		return strings.TrimPrefix(field, rootField+".")
	}

	if e.Type() == additionalPropertyType {
		if property, ok := e.Details()["property"].(string); ok && property != "" {
			return property
		}
	}

	return defaultField
}
