package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/service.yaml"

// LoadServiceConfigFrom reads the YAML file at path, then applies defaults and
// validates the result.
func LoadServiceConfigFrom(path string) (*ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg ServiceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *ServiceConfig {
	var cfg ServiceConfig
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *ServiceConfig) {
	if cfg.Stream.Provider == "" {
		cfg.Stream.Provider = "redis"
	}

	if cfg.Stream.Redis.Stream == "" {
		cfg.Stream.Redis.Stream = "game-records"
	}
	if cfg.Stream.Redis.Group == "" {
		cfg.Stream.Redis.Group = "validator-group"
	}

	if cfg.Stream.Kafka.Topic == "" {
		cfg.Stream.Kafka.Topic = "game-records"
	}
	if cfg.Stream.Kafka.GroupID == "" {
		cfg.Stream.Kafka.GroupID = "validator-group"
	}

	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = 5
	}

	if cfg.API.MaxBodyBytes == 0 {
		cfg.API.MaxBodyBytes = 1 << 20
	}
}

func (c *ServiceConfig) Validate() error {
	var errs []error

	switch c.Stream.Provider {
	case "redis", "kafka":
	default:
		errs = append(errs, fmt.Errorf("unsupported stream provider: %s", c.Stream.Provider))
	}

	if c.Stream.Redis.ResultStream != "" && c.Stream.Redis.ResultStream == c.Stream.Redis.Stream {
		errs = append(errs, errors.New("redis result_stream must differ from stream"))
	}
	if c.Stream.Kafka.ResultTopic != "" && c.Stream.Kafka.ResultTopic == c.Stream.Kafka.Topic {
		errs = append(errs, errors.New("kafka result_topic must differ from topic"))
	}

	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("negative batch workers: %d", c.Batch.Workers))
	}
	if c.API.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("negative max_body_bytes: %d", c.API.MaxBodyBytes))
	}

	return errors.Join(errs...)
}
