//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/fars-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/fars-dashboard/internal/adapter/source"
	"github.com/couchcryptid/fars-dashboard/internal/config"
	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/couchcryptid/fars-dashboard/internal/observability"
	"github.com/couchcryptid/fars-dashboard/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSinkTopic = "test-fars-state-records"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("fars-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func fixture(name string) string {
	return filepath.Join("..", "pipeline", "testdata", name)
}

type sinkMessage struct {
	Record  domain.StateRecord
	Key     string
	Headers map[string]string
}

func readSink(ctx context.Context, t *testing.T, consumer *kafkago.Reader) sinkMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var rec domain.StateRecord
	require.NoError(t, json.Unmarshal(msg.Value, &rec), "unmarshal sink message")
	return sinkMessage{Record: rec, Key: string(msg.Key), Headers: headers}
}

// TestPipelinePublishesDataset wires the source loader, the transformer and
// the Kafka sink and verifies every joined record lands on the topic.
func TestPipelinePublishesDataset(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		CrashesSource:   fixture("dataset0.txt"),
		AgeSource:       fixture("dataset1.txt"),
		BACSource:       fixture("dataset2.txt"),
		GeographySource: fixture("us.json"),
		SourceTimeout:   5 * time.Second,
		KafkaEnabled:    true,
		KafkaBrokers:    []string{broker},
		KafkaSinkTopic:  testSinkTopic,
	}

	metrics := observability.NewMetricsForTesting()
	loader := source.NewLoader(cfg, discardLogger(), metrics)
	transformer := pipeline.NewTransformer(2012, domain.NumberPolicyReject, nil, discardLogger(), metrics)
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(loader, transformer, discardLogger(), metrics, writer)
	res, err := p.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, res.Dataset.Len())

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	byKey := map[string]sinkMessage{}
	for range 3 {
		m := readSink(ctx, t, consumer)
		byKey[m.Key] = m
	}

	require.Len(t, byKey, 3)
	for _, key := range []string{"AL", "AK", "AZ"} {
		m, ok := byKey[key]
		require.True(t, ok, "missing %s", key)
		assert.Equal(t, "2012", m.Headers["dataset_year"])
		_, err := time.Parse(time.RFC3339, m.Headers["loaded_at"])
		assert.NoError(t, err, "loaded_at should be valid RFC3339")
		assert.Positive(t, m.Record.TotalFatalities)
	}

	al := byKey["AL"].Record
	assert.Equal(t, "Alabama", al.State)
	assert.Equal(t, 756, al.TotalCrashes)
	assert.Len(t, al.BACLevels, 4)
	assert.Zero(t, testutil.ToFloat64(metrics.SinkErrors))
}

// TestPipelineSurvivesUnreachableSink verifies a dead broker does not stop
// the dashboard from starting.
func TestPipelineSurvivesUnreachableSink(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := &config.Config{
		CrashesSource:   fixture("dataset0.txt"),
		AgeSource:       fixture("dataset1.txt"),
		BACSource:       fixture("dataset2.txt"),
		GeographySource: fixture("us.json"),
		SourceTimeout:   5 * time.Second,
		KafkaBrokers:    []string{"127.0.0.1:1"},
		KafkaSinkTopic:  testSinkTopic,
	}

	metrics := observability.NewMetricsForTesting()
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(
		source.NewLoader(cfg, discardLogger(), metrics),
		pipeline.NewTransformer(2012, domain.NumberPolicyReject, nil, discardLogger(), metrics),
		discardLogger(), metrics, writer,
	)

	loadCtx, loadCancel := context.WithTimeout(ctx, 5*time.Second)
	defer loadCancel()
	res, err := p.Run(loadCtx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Dataset.Len())
	require.NoError(t, p.CheckReadiness(ctx))
}
