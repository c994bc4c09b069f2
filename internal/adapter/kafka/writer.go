package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/fars-dashboard/internal/config"
	"github.com/couchcryptid/fars-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes the joined state records to a Kafka topic, one message
// per record. It implements pipeline.Loader.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Load serializes every record of the dataset and publishes them in a single
// WriteMessages call.
func (w *Writer) Load(ctx context.Context, ds *domain.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return nil
	}
	records := ds.Records()
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i], ds.Year(), ds.LoadedAt())
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d records: %w", len(msgs), err)
	}
	w.logger.Info("dataset published", "records", len(msgs), "year", ds.Year())
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a StateRecord into a Kafka message keyed by
// the state code, or the name for rows without one.
func serializeToMessage(rec domain.StateRecord, year int, loadedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize state record: %w", err)
	}
	key := rec.Abbreviation
	if key == "" {
		key = rec.State
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "dataset_year", Value: []byte(strconv.Itoa(year))},
			{Key: "loaded_at", Value: []byte(loadedAt.Format(time.RFC3339))},
		},
	}, nil
}
