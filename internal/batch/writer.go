package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

// Summary aggregates the results seen by a Writer.
type Summary struct {
	Total     int     `json:"total"`
	Valid     int     `json:"valid"`
	Invalid   int     `json:"invalid"`
	ValidRate float64 `json:"valid_rate"`
}

func (s *Summary) add(result models.ValidationResult) {
	s.Total++
	if result.IsValid {
		s.Valid++
	} else {
		s.Invalid++
	}
	s.ValidRate = float64(s.Valid) / float64(s.Total)
}

// Writer emits one JSON line per result (jsonl) or a single summary document
// on Close (summary). Both formats keep a running Summary.
type Writer struct {
	out     io.Writer
	format  string
	encoder *json.Encoder
	summary Summary
	closed  bool
	logger  *zerolog.Logger
}

func NewWriter(out io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case FormatJSONL, FormatSummary:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return &Writer{
		out:     out,
		format:  format,
		encoder: json.NewEncoder(out),
		logger:  logger,
	}, nil
}

func (w *Writer) Write(result models.ValidationResult) error {
	w.summary.add(result)

	if w.format != FormatJSONL {
		return nil
	}

	if err := w.encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to write result %s: %w", result.RecordID, err)
	}
	return nil
}

func (w *Writer) Summary() Summary {
	return w.summary
}

// Close flushes the summary for the summary format. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	if w.closed || w.format != FormatSummary {
		return nil
	}
	w.closed = true

	w.logger.Debug().Int("total", w.summary.Total).Msg("Writing summary")
	return WriteSummary(w.out, w.summary)
}

func WriteSummary(out io.Writer, summary Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if _, err := out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
