package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type Publisher struct {
	writer *kafka.Writer
	topic  string
	logger *zerolog.Logger
}

func NewPublisher(cfg *KafkaStreamConfig, logger *zerolog.Logger) *Publisher {
	return &Publisher{
		writer: newWriter(cfg.Brokers, cfg.Topic),
		topic:  cfg.Topic,
		logger: logger,
	}
}

// Publish writes req to the input topic keyed by record id and returns the key.
func (p *Publisher) Publish(ctx context.Context, req models.ValidationRequest) (string, error) {
	msg, err := requestMessage(req)
	if err != nil {
		return "", err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to write to topic %s: %w", p.topic, err)
	}

	p.logger.Debug().Str("topic", p.topic).Str("record_id", req.RecordID).Msg("Published")
	return req.RecordID, nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func requestMessage(req models.ValidationRequest) (kafka.Message, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode request: %w", err)
	}

	return kafka.Message{
		Key:   []byte(req.RecordID),
		Value: payload,
	}, nil
}
