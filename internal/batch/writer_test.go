package batch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []models.ValidationResult {
	return []models.ValidationResult{
		{RecordID: "line-1", IsValid: true, Message: "Game has been validated successfully", Source: "batch"},
		{RecordID: "line-2", IsValid: false, Message: "rank: Invalid type. Expected: integer, given: string", Source: "batch"},
		{RecordID: "line-3", IsValid: true, Message: "Game has been validated successfully", Source: "batch"},
		{RecordID: "line-4", IsValid: false, Message: "field: name is required", Source: "batch"},
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, "csv", newTestLogger())
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestWriter_JSONL(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, FormatJSONL, newTestLogger())
	require.NoError(t, err)

	for _, result := range sampleResults() {
		require.NoError(t, writer.Write(result))
	}
	require.NoError(t, writer.Close())

	scanner := bufio.NewScanner(&buf)
	var lines []models.ValidationResult
	for scanner.Scan() {
		var result models.ValidationResult
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &result))
		lines = append(lines, result)
	}

	require.Len(t, lines, 4)
	assert.Equal(t, "line-2", lines[1].RecordID)
	assert.False(t, lines[1].IsValid)
}

func TestWriter_Summary(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, FormatSummary, newTestLogger())
	require.NoError(t, err)

	for _, result := range sampleResults() {
		require.NoError(t, writer.Write(result))
	}
	assert.Zero(t, buf.Len(), "summary format writes nothing before Close")

	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close())

	var summary Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))
	assert.Equal(t, Summary{Total: 4, Valid: 2, Invalid: 2, ValidRate: 0.5}, summary)
	assert.Equal(t, summary, writer.Summary())
}

func TestWriter_EmptySummary(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, FormatSummary, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	var summary Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))
	assert.Equal(t, Summary{}, summary)
}
