package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/zipcode-etl/internal/config"
	"github.com/couchcryptid/zipcode-etl/internal/zipcode"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces exported records to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured export topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaExportTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes records in a single WriteMessages call. Records are
// keyed by ZIP code so every version of a ZIP lands on one partition.
func (w *Writer) LoadBatch(ctx context.Context, records []zipcode.Record) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msgs[i] = serializeToMessage(records[i])
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Debug("published zip code batch", "topic", w.writer.Topic, "records", len(records))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage renders a record as its export line, with the
// kind and state as headers for consumers that filter without parsing.
func serializeToMessage(rec zipcode.Record) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(rec.Zip),
		Value: []byte(zipcode.Format(rec)),
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(rec.Kind.String())},
			{Key: "state", Value: []byte(rec.State)},
		},
	}
}
