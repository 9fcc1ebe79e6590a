package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/enkooo/video-game-sales/internal/executor"
	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	source       = "redis"
	payloadField = "payload"
	resultField  = "result"
)

var ErrMissingPayload = errors.New("missing payload field")

type Consumer struct {
	client   *redis.Client
	cfg      *RedisStreamConfig
	executor *executor.Executor
	logger   *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *RedisStreamConfig, exec *executor.Executor, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:   client,
		cfg:      cfg,
		executor: exec,
		logger:   logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s: %w", c.cfg.Group, err)
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.cfg.Stream).
		Str("result_stream", c.cfg.ResultStream).
		Str("group", c.cfg.Group).
		Str("consumer", c.cfg.ConsumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.ConsumerName,
			Streams:  []string{c.cfg.Stream, ">"},
			Count:    10,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Debug().Str("id", msg.ID).Msg("Message received")

	req, err := decodeMessage(msg)
	if err != nil {
		// bad message: ACK to skip it
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID)
		return
	}

	result := c.executor.Execute(source, req)

	if c.cfg.ResultStream != "" {
		if err := c.publishResult(ctx, result); err != nil {
			c.logger.Error().Err(err).Str("id", msg.ID).Str("record_id", result.RecordID).Msg("Failed to publish result")
		}
	}

	c.ack(ctx, msg.ID)
}

func (c *Consumer) publishResult(ctx context.Context, result models.ValidationResult) error {
	values, err := resultValues(result)
	if err != nil {
		return err
	}

	return c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.cfg.ResultStream,
		Values: values,
	}).Err()
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

// decodeMessage extracts the request envelope from the payload field.
func decodeMessage(msg redis.XMessage) (models.ValidationRequest, error) {
	var payload []byte
	switch v := msg.Values[payloadField].(type) {
	case string:
		payload = []byte(v)
	case []byte:
		payload = v
	default:
		return models.ValidationRequest{}, ErrMissingPayload
	}

	return models.DecodeRequest(payload)
}

func resultValues(result models.ValidationResult) (map[string]any, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return map[string]any{
		"record_id": result.RecordID,
		resultField: string(data),
	}, nil
}
