package models

import (
	"errors"
	"testing"
)

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantID     string
		wantRecord string
		wantErr    bool
	}{
		{
			name:       "envelope with id",
			payload:    `{"record_id":"r-1","record":{"rank":1}}`,
			wantID:     "r-1",
			wantRecord: `{"rank":1}`,
		},
		{
			name:       "envelope without id",
			payload:    `  {"record":42}`,
			wantRecord: `42`,
		},
		{
			name:    "array payload",
			payload: `[1,2,3]`,
			wantErr: true,
		},
		{
			name:    "empty payload",
			payload: ``,
			wantErr: true,
		},
		{
			name:    "broken json",
			payload: `{"record":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeRequest([]byte(tt.payload))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEnvelope) {
					t.Fatalf("expected ErrInvalidEnvelope, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.RecordID != tt.wantID {
				t.Errorf("RecordID: %q, want %q", req.RecordID, tt.wantID)
			}
			if string(req.Record) != tt.wantRecord {
				t.Errorf("Record: %s, want %s", req.Record, tt.wantRecord)
			}
		})
	}
}
