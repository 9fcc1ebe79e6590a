package kafka

import (
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaStreamConfig names the brokers, the input topic, the topic results are
// written to and the consumer group. An empty ResultTopic disables publishing.
type KafkaStreamConfig struct {
	Brokers     []string
	Topic       string
	ResultTopic string
	GroupID     string
}

func NewKafkaStreamConfig(brokers []string, topic string, resultTopic string, groupID string) *KafkaStreamConfig {
	return &KafkaStreamConfig{
		Brokers:     brokers,
		Topic:       topic,
		ResultTopic: resultTopic,
		GroupID:     groupID,
	}
}

func (c *KafkaStreamConfig) Validate() error {
	var errs []error
	if len(c.Brokers) == 0 {
		errs = append(errs, errors.New("kafka brokers required"))
	}
	if c.Topic == "" {
		errs = append(errs, errors.New("kafka topic required"))
	}
	if c.GroupID == "" {
		errs = append(errs, errors.New("kafka group_id required"))
	}
	return errors.Join(errs...)
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Transport: &kafka.Transport{
			Dial: dialer.DialFunc,
		},
	}
}
