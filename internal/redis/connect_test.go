package redis

import (
	"context"
	"testing"
	"time"
)

func TestConnectOptions_Backoff(t *testing.T) {
	opts := ConnectOptions{BaseBackoff: 100 * time.Millisecond}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 0},
		{attempt: 1, want: 100 * time.Millisecond},
		{attempt: 2, want: 200 * time.Millisecond},
		{attempt: 3, want: 400 * time.Millisecond},
		{attempt: 4, want: 800 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := opts.Backoff(tt.attempt); got != tt.want {
			t.Errorf("Backoff(%d): %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestConnectOptions_DefaultBackoff(t *testing.T) {
	opts := ConnectOptions{}

	if got := opts.Backoff(1); got != time.Second {
		t.Errorf("first retry: %v, want 1s", got)
	}
	if got := opts.Backoff(2); got != 2*time.Second {
		t.Errorf("second retry: %v, want 2s", got)
	}
}

func TestConnectOptions_Defaults(t *testing.T) {
	opts := ConnectOptions{}.withDefaults()

	if opts.Addr != "localhost:6379" {
		t.Errorf("Addr: %s, want localhost:6379", opts.Addr)
	}
	if opts.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries: %d, want %d", opts.MaxRetries, DefaultMaxRetries)
	}
	if opts.BaseBackoff != time.Second {
		t.Errorf("BaseBackoff: %v, want 1s", opts.BaseBackoff)
	}
}

func TestConnectRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Port 1 is reserved; nothing listens there.
	_, err := ConnectRedis(ctx, ConnectOptions{
		Addr:        "127.0.0.1:1",
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected connection error")
	}
}
