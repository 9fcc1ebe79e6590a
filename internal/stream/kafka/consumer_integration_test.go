//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/enkooo/video-game-sales/internal/executor"
	"github.com/enkooo/video-game-sales/internal/models"
	"github.com/enkooo/video-game-sales/internal/testutil/containers"
	"github.com/enkooo/video-game-sales/internal/validator"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGame = `{"rank":1,"name":"Wii Sports","platform":"Wii","year":"2006","genre":"Sports","publisher":"Nintendo","na_sales":41.49,"eu_sales":29.02,"jp_sales":3.77,"other_sales":8.46,"global_sales":82.74}`

func TestConsumer_ValidatesPublishesAndCommits(t *testing.T) {
	kc := containers.NewKafkaContainer(t)
	cfg := NewKafkaStreamConfig([]string{kc.Broker}, "game-records", "game-records-validated", "validator-group")
	kc.CreateTopics(t, cfg.Topic, cfg.ResultTopic)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger := zerolog.Nop()

	// Malformed first, then a record with no id in the envelope (falls back to
	// the message key), then an invalid record.
	raw := newWriter(cfg.Brokers, cfg.Topic)
	require.NoError(t, raw.WriteMessages(ctx,
		kafka.Message{Key: []byte("bad"), Value: []byte("not json")},
		kafka.Message{Key: []byte("game-1"), Value: []byte(`{"record":` + validGame + `}`)},
	))
	require.NoError(t, raw.Close())

	publisher := NewPublisher(cfg, &logger)
	_, err := publisher.Publish(ctx, models.ValidationRequest{RecordID: "game-2", Record: json.RawMessage(`{"rank":"first"}`)})
	require.NoError(t, err)
	require.NoError(t, publisher.Close())

	v, err := validator.New()
	require.NoError(t, err)
	consumer := NewConsumer(cfg, executor.NewExecutor(v, nil, &logger), &logger)
	require.NoError(t, consumer.Setup(ctx))

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- consumer.Start(runCtx) }()

	results := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   cfg.Brokers,
		Topic:     cfg.ResultTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer results.Close()

	var got []models.ValidationResult
	keys := map[string]string{}
	for len(got) < 2 {
		msg, err := results.ReadMessage(ctx)
		require.NoError(t, err)

		var result models.ValidationResult
		require.NoError(t, json.Unmarshal(msg.Value, &result))
		got = append(got, result)
		keys[result.RecordID] = string(msg.Key)
	}

	assert.Equal(t, "game-1", got[0].RecordID)
	assert.True(t, got[0].IsValid)
	assert.Equal(t, "kafka", got[0].Source)
	assert.Equal(t, "game-2", got[1].RecordID)
	assert.False(t, got[1].IsValid)
	assert.Contains(t, got[1].Message, "rank: ")
	assert.Equal(t, map[string]string{"game-1": "game-1", "game-2": "game-2"}, keys)

	// All three input messages, the malformed one included, are committed.
	client := &kafka.Client{Addr: kafka.TCP(kc.Broker), Timeout: 10 * time.Second}
	require.Eventually(t, func() bool {
		resp, err := client.OffsetFetch(ctx, &kafka.OffsetFetchRequest{
			GroupID: cfg.GroupID,
			Topics:  map[string][]int{cfg.Topic: {0}},
		})
		if err != nil || len(resp.Topics[cfg.Topic]) != 1 {
			return false
		}
		return resp.Topics[cfg.Topic][0].CommittedOffset == 3
	}, 30*time.Second, 200*time.Millisecond)

	stop()
	select {
	case err := <-done:
		assert.True(t, err == nil || errors.Is(err, context.Canceled), "Start returned %v", err)
	case <-time.After(30 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	require.NoError(t, consumer.Stop())
}
