package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Publisher struct {
	client *redis.Client
	stream string
	logger *zerolog.Logger
}

func NewPublisher(client *redis.Client, stream string, logger *zerolog.Logger) *Publisher {
	return &Publisher{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Publish adds req to the stream and returns the entry id.
func (p *Publisher) Publish(ctx context.Context, req models.ValidationRequest) (string, error) {
	values, err := requestValues(req)
	if err != nil {
		return "", err
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish to stream %s: %w", p.stream, err)
	}

	p.logger.Debug().Str("stream", p.stream).Str("id", id).Str("record_id", req.RecordID).Msg("Published")
	return id, nil
}

func (p *Publisher) Close() error {
	return p.client.Close()
}

func requestValues(req models.ValidationRequest) (map[string]any, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	return map[string]any{payloadField: string(data)}, nil
}
