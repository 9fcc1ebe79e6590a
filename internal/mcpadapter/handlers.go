package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/enkooo/video-game-sales/internal/executor"
	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName = "video-game-sales-validator"
	ToolName   = "validate_game_record"
	source     = "mcp"
)

// ValidateInput is the MCP tool input schema (matches the stream envelope field names).
type ValidateInput struct {
	RecordID string `json:"record_id,omitempty" jsonschema:"optional record identifier echoed in the result"`
	Record   any    `json:"record" jsonschema:"game sales record to validate; any JSON value is accepted"`
}

// ValidateOutput is the tool result. ValidatedAt is RFC 3339 with nanoseconds
// in UTC, the same text encoding/json uses for ValidationResult.
type ValidateOutput struct {
	RecordID    string `json:"record_id" jsonschema:"record identifier, generated when none was given"`
	IsValid     bool   `json:"isValid" jsonschema:"whether the record matches the schema"`
	Message     string `json:"message" jsonschema:"confirmation or comma-separated violations"`
	Source      string `json:"source"`
	ValidatedAt string `json:"validated_at"`
}

func newOutput(result models.ValidationResult) ValidateOutput {
	return ValidateOutput{
		RecordID:    result.RecordID,
		IsValid:     result.IsValid,
		Message:     result.Message,
		Source:      result.Source,
		ValidatedAt: result.ValidatedAt.Format(time.RFC3339Nano),
	}
}

// NewServer returns an MCP server exposing the record validation tool.
func NewServer(exec *executor.Executor, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Validate a video-game sales record (rank, name, platform, year, genre, publisher and regional sales) against the fixed record schema",
	}, NewValidateHandler(exec))

	return server
}

// NewValidateHandler returns a tool handler that uses the given executor.
// Pass the returned function to mcp.AddTool.
func NewValidateHandler(exec *executor.Executor) func(context.Context, *mcp.CallToolRequest, ValidateInput) (*mcp.CallToolResult, ValidateOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, ValidateOutput, error) {
		return ValidateRecord(ctx, exec, req, input)
	}
}

// ValidateRecord runs the validation and returns the result. An invalid record
// is a normal result, not a tool error.
func ValidateRecord(
	ctx context.Context,
	exec *executor.Executor,
	req *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	record, err := json.Marshal(input.Record)
	if err != nil {
		return nil, ValidateOutput{}, fmt.Errorf("failed to encode record: %w", err)
	}

	result := exec.Execute(source, models.ValidationRequest{
		RecordID: input.RecordID,
		Record:   record,
	})

	return nil, newOutput(result), nil
}
