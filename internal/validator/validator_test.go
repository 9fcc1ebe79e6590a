package validator

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func validRecord() map[string]any {
	return map[string]any{
		"rank":         1,
		"name":         "Wii Sports",
		"platform":     "Wii",
		"year":         "2006",
		"genre":        "Sports",
		"publisher":    "Nintendo",
		"na_sales":     41.49,
		"eu_sales":     29.02,
		"jp_sales":     3.77,
		"other_sales":  8.46,
		"global_sales": 82.74,
	}
}

func newValidator(t *testing.T) *RecordValidator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func TestValidate_ValidRecord(t *testing.T) {
	v := newValidator(t)

	outcome := v.Validate(validRecord())

	assert.True(t, outcome.IsValid)
	assert.Equal(t, SuccessMessage, outcome.Message)
}

func TestValidate_TypedRecord(t *testing.T) {
	v := newValidator(t)

	record := models.GameRecord{
		Rank:        2,
		Name:        "Super Mario Bros.",
		Platform:    "NES",
		Year:        "1985",
		Genre:       "Platform",
		Publisher:   "Nintendo",
		NASales:     29.08,
		EUSales:     3.58,
		JPSales:     6.81,
		OtherSales:  0.77,
		GlobalSales: 40.24,
	}

	outcome := v.Validate(record)
	assert.True(t, outcome.IsValid, outcome.Message)
}

func TestValidate_MissingField(t *testing.T) {
	v := newValidator(t)

	for _, field := range RequiredFields {
		t.Run(field, func(t *testing.T) {
			record := validRecord()
			delete(record, field)

			outcome := v.Validate(record)

			assert.False(t, outcome.IsValid)
			assert.Contains(t, outcome.Message, field)
			assert.Contains(t, outcome.Message, "required")
		})
	}
}

func TestValidate_AdditionalField(t *testing.T) {
	v := newValidator(t)

	record := validRecord()
	record["developer"] = "Nintendo EAD"

	outcome := v.Validate(record)

	assert.False(t, outcome.IsValid)
	assert.True(t, strings.HasPrefix(outcome.Message, "developer: "), outcome.Message)
}

func TestValidate_WrongType(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		field string
		value any
	}{
		{name: "rank as text", field: "rank", value: "1"},
		{name: "rank as decimal", field: "rank", value: 1.5},
		{name: "name as number", field: "name", value: 7},
		{name: "year as number", field: "year", value: 2006},
		{name: "na_sales as text", field: "na_sales", value: "41.49"},
		{name: "global_sales as null", field: "global_sales", value: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			record[tt.field] = tt.value

			outcome := v.Validate(record)

			assert.False(t, outcome.IsValid)
			assert.True(t, strings.HasPrefix(outcome.Message, tt.field+": "), outcome.Message)
		})
	}
}

func TestValidate_NumberAcceptsIntegers(t *testing.T) {
	v := newValidator(t)

	record := validRecord()
	record["jp_sales"] = 0

	assert.True(t, v.Validate(record).IsValid)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	v := newValidator(t)

	record := validRecord()
	delete(record, "genre")
	record["rank"] = "first"
	record["extra"] = true

	outcome := v.Validate(record)

	assert.False(t, outcome.IsValid)
	assert.Contains(t, outcome.Message, "genre is required")
	assert.Contains(t, outcome.Message, "rank: ")
	assert.Contains(t, outcome.Message, "extra: ")
}

func TestValidate_NonObject(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name   string
		record any
	}{
		{name: "number", record: 42},
		{name: "nil", record: nil},
		{name: "string", record: "Wii Sports"},
		{name: "array", record: []any{validRecord()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := v.Validate(tt.record)

			assert.False(t, outcome.IsValid)
			assert.True(t, strings.HasPrefix(outcome.Message, "field: "), outcome.Message)
		})
	}
}

func TestValidate_UnencodableValue(t *testing.T) {
	v := newValidator(t)

	outcome := v.Validate(make(chan int))

	assert.False(t, outcome.IsValid)
	assert.True(t, strings.HasPrefix(outcome.Message, FallbackMessage), outcome.Message)
}

func TestValidate_Idempotent(t *testing.T) {
	v := newValidator(t)

	record := validRecord()
	delete(record, "publisher")

	first := v.Validate(record)
	second := v.Validate(record)

	assert.Equal(t, first, second)
}

func TestValidate_ConcurrentUse(t *testing.T) {
	v := newValidator(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, v.Validate(validRecord()).IsValid)
		}()
	}
	wg.Wait()
}

func TestValidateJSON(t *testing.T) {
	v := newValidator(t)

	valid, err := json.Marshal(validRecord())
	require.NoError(t, err)

	tests := []struct {
		name      string
		data      string
		wantValid bool
		prefix    string
	}{
		{name: "valid document", data: string(valid), wantValid: true, prefix: SuccessMessage},
		{name: "null document", data: "null", prefix: "field: "},
		{name: "number document", data: "3.14", prefix: "field: "},
		{name: "malformed document", data: `{"rank":`, prefix: FallbackMessage},
		{name: "empty document", data: "", prefix: FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := v.ValidateJSON([]byte(tt.data))

			assert.Equal(t, tt.wantValid, outcome.IsValid)
			assert.True(t, strings.HasPrefix(outcome.Message, tt.prefix), outcome.Message)
		})
	}
}

func TestSchema_DeclaresEveryRequiredField(t *testing.T) {
	v := newValidator(t)

	var doc struct {
		Properties           map[string]any `json:"properties"`
		Required             []string       `json:"required"`
		AdditionalProperties bool           `json:"additionalProperties"`
	}
	require.NoError(t, json.Unmarshal(v.Schema(), &doc))

	assert.Equal(t, RequiredFields, doc.Required)
	assert.Len(t, doc.Properties, len(RequiredFields))
	assert.False(t, doc.AdditionalProperties)
}

func TestFormatErrors_Fallbacks(t *testing.T) {
	assert.Equal(t, FallbackMessage, formatErrors(nil))

	rootErr := &gojsonschema.ResultErrorFields{}
	rootErr.SetType("invalid_type")
	rootErr.SetContext(gojsonschema.NewJsonContext(rootField, nil))
	rootErr.SetDetails(gojsonschema.ErrorDetails{})
	rootErr.SetDescription("Invalid type")

	extraErr := &gojsonschema.ResultErrorFields{}
	extraErr.SetType(additionalPropertyType)
	extraErr.SetContext(gojsonschema.NewJsonContext(rootField, nil))
	extraErr.SetDetails(gojsonschema.ErrorDetails{"property": "critic_score"})
	extraErr.SetDescription("Additional property critic_score is not allowed")

	got := formatErrors([]gojsonschema.ResultError{rootErr, extraErr})

	assert.Equal(t, "field: Invalid type, critic_score: Additional property critic_score is not allowed", got)
}
