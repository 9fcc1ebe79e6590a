package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/enkooo/video-game-sales/internal/executor"
	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const source = "kafka"

type Consumer struct {
	cfg      *KafkaStreamConfig
	reader   *kafka.Reader
	writer   *kafka.Writer
	executor *executor.Executor
	logger   *zerolog.Logger
}

func NewConsumer(cfg *KafkaStreamConfig, exec *executor.Executor, logger *zerolog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     2 * time.Second,
		StartOffset: kafka.FirstOffset,
	})

	var writer *kafka.Writer
	if cfg.ResultTopic != "" {
		writer = newWriter(cfg.Brokers, cfg.ResultTopic)
	}

	return &Consumer{
		cfg:      cfg,
		reader:   reader,
		writer:   writer,
		executor: exec,
		logger:   logger,
	}
}

// Setup checks that the first broker is reachable.
func (c *Consumer) Setup(ctx context.Context) error {
	dialer := &kafka.Dialer{Timeout: 5 * time.Second, DualStack: true}

	conn, err := dialer.DialContext(ctx, "tcp", c.cfg.Brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to kafka broker %s: %w", c.cfg.Brokers[0], err)
	}
	return conn.Close()
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Strs("brokers", c.cfg.Brokers).
		Str("topic", c.cfg.Topic).
		Str("result_topic", c.cfg.ResultTopic).
		Str("group", c.cfg.GroupID).
		Msg("Consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				// reader closed
				return nil
			}

			c.logger.Error().Err(err).Msg("Failed to fetch message")
			continue
		}

		c.process(ctx, msg)
	}
}

func (c *Consumer) Stop() error {
	var errs []error
	if err := c.reader.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close reader: %w", err))
	}
	if c.writer != nil {
		if err := c.writer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close writer: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	log := c.logger.With().
		Int("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Logger()

	req, err := models.DecodeRequest(msg.Value)
	if err != nil {
		// bad message: commit to skip it
		log.Error().Err(err).Msg("Failed to decode message")
		c.commit(ctx, msg)
		return
	}

	if req.RecordID == "" && len(msg.Key) > 0 {
		req.RecordID = string(msg.Key)
	}

	result := c.executor.Execute(source, req)

	if c.writer != nil {
		out, err := resultMessage(result)
		if err == nil {
			err = c.writer.WriteMessages(ctx, out)
		}
		if err != nil {
			log.Error().Err(err).Str("record_id", result.RecordID).Msg("Failed to publish result")
		}
	}

	c.commit(ctx, msg)
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to commit message")
	}
}

// resultMessage keys the result by record id so every result for one record
// lands on the same partition.
func resultMessage(result models.ValidationResult) (kafka.Message, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode result: %w", err)
	}

	return kafka.Message{
		Key:   []byte(result.RecordID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "source", Value: []byte(result.Source)},
		},
	}, nil
}
