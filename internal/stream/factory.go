package stream

import (
	"context"
	"errors"
	"fmt"

	"github.com/enkooo/video-game-sales/internal/config"
	"github.com/enkooo/video-game-sales/internal/executor"
	red "github.com/enkooo/video-game-sales/internal/redis"
	"github.com/enkooo/video-game-sales/internal/stream/kafka"
	"github.com/enkooo/video-game-sales/internal/stream/redis"
	"github.com/rs/zerolog"
)

const (
	ProviderRedis = "redis"
	ProviderKafka = "kafka"
)

var ErrUnsupportedProvider = errors.New("unsupported stream provider")

// StreamConfig combines the YAML stream section with connection settings
// taken from the environment.
type StreamConfig struct {
	Service       config.StreamConfig
	RedisAddr     string
	RedisPassword string
	KafkaBrokers  []string
	ConsumerName  string
}

func (c *StreamConfig) provider() string {
	// If provider is empty, fallback to the default configuration.
	if c.Service.Provider == "" {
		return ProviderRedis
	}
	return c.Service.Provider
}

func (c *StreamConfig) redisConfig() *redis.RedisStreamConfig {
	return redis.NewRedisStreamConfig(
		c.Service.Redis.Stream,
		c.Service.Redis.ResultStream,
		c.Service.Redis.Group,
		c.ConsumerName,
	)
}

func (c *StreamConfig) kafkaConfig() *kafka.KafkaStreamConfig {
	return kafka.NewKafkaStreamConfig(
		c.KafkaBrokers,
		c.Service.Kafka.Topic,
		c.Service.Kafka.ResultTopic,
		c.Service.Kafka.GroupID,
	)
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	exec *executor.Executor,
	logger *zerolog.Logger,
) (StreamConsumer, error) {
	switch cfg.provider() {
	case ProviderRedis:
		client, err := red.ConnectRedis(ctx, red.ConnectOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(client, cfg.redisConfig(), exec, logger), nil

	case ProviderKafka:
		kafkaCfg := cfg.kafkaConfig()
		if err := kafkaCfg.Validate(); err != nil {
			return nil, err
		}

		return kafka.NewConsumer(kafkaCfg, exec, logger), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Service.Provider)
	}
}

// NewPublisher returns a publisher writing to the configured input stream or topic.
func NewPublisher(ctx context.Context, cfg *StreamConfig, logger *zerolog.Logger) (Publisher, error) {
	switch cfg.provider() {
	case ProviderRedis:
		client, err := red.ConnectRedis(ctx, red.ConnectOptions{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			MaxRetries: 3,
		})
		if err != nil {
			return nil, err
		}

		return redis.NewPublisher(client, cfg.Service.Redis.Stream, logger), nil

	case ProviderKafka:
		kafkaCfg := cfg.kafkaConfig()
		if err := kafkaCfg.Validate(); err != nil {
			return nil, err
		}

		return kafka.NewPublisher(kafkaCfg, logger), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Service.Provider)
	}
}
