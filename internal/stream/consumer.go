package stream

import (
	"context"

	"github.com/enkooo/video-game-sales/internal/models"
)

type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}

// Publisher sends validation requests onto the input stream.
type Publisher interface {
	Publish(ctx context.Context, req models.ValidationRequest) (string, error)
	Close() error
}
