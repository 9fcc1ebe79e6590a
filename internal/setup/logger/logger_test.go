package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewWithWriter(&bytes.Buffer{}, tt.level, false)
			if logger.GetLevel() != tt.want {
				t.Errorf("Level: %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", false)

	logger.Info().Str("record_id", "game-001").Msg("record validated")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}

	if entry["record_id"] != "game-001" {
		t.Errorf("record_id: %v, want game-001", entry["record_id"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("Expected timestamp field")
	}
	if _, ok := entry["caller"]; !ok {
		t.Error("Expected caller field")
	}
}
