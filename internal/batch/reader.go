package batch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// maxLineBytes bounds a single JSONL line.
const maxLineBytes = 1 << 20

var ErrInvalidJSON = errors.New("invalid JSON")

// InputRecord is one non-blank line of the input. Raw holds the line even when
// Error is set so the record can still be reported.
type InputRecord struct {
	LineNumber int
	Raw        json.RawMessage
	Error      error
}

type Reader struct {
	source io.Reader
	logger *zerolog.Logger
}

func NewReader(source io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		source: source,
		logger: logger,
	}
}

// ReadAll streams records until EOF or ctx is cancelled. The channel is closed
// when reading stops.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.source)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			record := InputRecord{
				LineNumber: lineNumber,
				Raw:        bytes.Clone(line),
			}
			if !json.Valid(line) {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, ErrInvalidJSON)
			}

			select {
			case out <- record:
			case <-ctx.Done():
				r.logger.Warn().Int("line", lineNumber).Msg("Reading cancelled")
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Int("line", lineNumber+1).Msg("Failed to read input")
			select {
			case out <- InputRecord{LineNumber: lineNumber + 1, Error: fmt.Errorf("line %d: %w", lineNumber+1, err)}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}
