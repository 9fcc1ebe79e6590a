package setup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/enkooo/video-game-sales/internal/config"
	"github.com/enkooo/video-game-sales/internal/executor"
	"github.com/enkooo/video-game-sales/internal/metrics"
	"github.com/enkooo/video-game-sales/internal/stream"
	"github.com/enkooo/video-game-sales/internal/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel          string
	LogPretty         bool
	ServiceConfigPath string
	APIPort           string
	StreamProvider    string
	RedisAddr         string
	RedisPassword     string
	KafkaBrokers      []string
	ConsumerName      string
}

type Dependencies struct {
	Validator *validator.RecordValidator
	Executor  *executor.Executor
	Metrics   *metrics.Metrics
	Service   *config.ServiceConfig
	Logger    *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogPretty:         getEnv("LOG_FORMAT", "console") == "console",
		ServiceConfigPath: getEnv("SERVICE_CONFIG_PATH", config.DefaultPath),
		APIPort:           getEnv("API_PORT", "18081"),
		StreamProvider:    getEnv("STREAM_PROVIDER", ""),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:      splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		ConsumerName:      getEnv("HOSTNAME", "validator-1"),
	}
}

// Wire builds the validator, metrics and executor shared by every command.
// Metrics are registered on reg.
func Wire(cfg *Config, logger *zerolog.Logger, reg prometheus.Registerer) (*Dependencies, error) {
	serviceCfg, err := LoadService(cfg, logger)
	if err != nil {
		return nil, err
	}

	recordValidator, err := validator.New()
	if err != nil {
		return nil, err
	}

	m := metrics.New(reg)
	exec := executor.NewExecutor(recordValidator, m, logger)

	return &Dependencies{
		Validator: recordValidator,
		Executor:  exec,
		Metrics:   m,
		Service:   serviceCfg,
		Logger:    logger,
	}, nil
}

// LoadService reads the service YAML and applies the STREAM_PROVIDER override.
func LoadService(cfg *Config, logger *zerolog.Logger) (*config.ServiceConfig, error) {
	serviceCfg, err := loadServiceConfig(cfg.ServiceConfigPath, logger)
	if err != nil {
		return nil, err
	}

	if cfg.StreamProvider != "" {
		serviceCfg.Stream.Provider = cfg.StreamProvider
		if err := serviceCfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid STREAM_PROVIDER: %w", err)
		}
	}

	return serviceCfg, nil
}

// StreamConfig merges the stream section with connection settings from the environment.
func StreamConfig(cfg *Config, serviceCfg *config.ServiceConfig) *stream.StreamConfig {
	return &stream.StreamConfig{
		Service:       serviceCfg.Stream,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		KafkaBrokers:  cfg.KafkaBrokers,
		ConsumerName:  cfg.ConsumerName,
	}
}

// loadServiceConfig falls back to built-in defaults only when the default file
// is absent; an explicitly configured path must exist.
func loadServiceConfig(path string, logger *zerolog.Logger) (*config.ServiceConfig, error) {
	serviceCfg, err := config.LoadServiceConfigFrom(path)
	if err == nil {
		return serviceCfg, nil
	}

	if path == config.DefaultPath && errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Str("path", path).Msg("Service config not found, using defaults")
		return config.Default(), nil
	}

	return nil, fmt.Errorf("failed to load service config: %w", err)
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func splitList(value string) []string {
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
