package redis

// RedisStreamConfig names the input stream, its consumer group and the
// stream results are published to. An empty ResultStream disables publishing.
type RedisStreamConfig struct {
	Stream       string
	ResultStream string
	Group        string
	ConsumerName string
}

func NewRedisStreamConfig(stream string, resultStream string, group string, consumerName string) *RedisStreamConfig {
	return &RedisStreamConfig{
		Stream:       stream,
		ResultStream: resultStream,
		Group:        group,
		ConsumerName: consumerName,
	}
}
