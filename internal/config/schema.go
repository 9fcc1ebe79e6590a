package config

// ServiceConfig represents the complete validator service configuration
type ServiceConfig struct {
	Stream StreamConfig `yaml:"stream"`
	Batch  BatchConfig  `yaml:"batch"`
	API    APIConfig    `yaml:"api"`
}

// StreamConfig selects the stream provider and its endpoints
type StreamConfig struct {
	Provider string      `yaml:"provider"`
	Redis    RedisConfig `yaml:"redis"`
	Kafka    KafkaConfig `yaml:"kafka"`
}

// RedisConfig names the Redis stream, its consumer group and the result stream.
// An empty result stream disables result publishing.
type RedisConfig struct {
	Stream       string `yaml:"stream"`
	ResultStream string `yaml:"result_stream"`
	Group        string `yaml:"group"`
}

// KafkaConfig names the input and result topics and the consumer group
type KafkaConfig struct {
	Topic       string `yaml:"topic"`
	ResultTopic string `yaml:"result_topic"`
	GroupID     string `yaml:"group_id"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"`
}

type APIConfig struct {
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}
