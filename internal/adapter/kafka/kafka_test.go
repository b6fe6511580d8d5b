package kafka

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/zipcode-etl/internal/config"
	"github.com/couchcryptid/zipcode-etl/internal/zipcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	rec := zipcode.Record{
		Zip:   "02134",
		Kind:  zipcode.KindPOBox,
		City:  "ALLSTON",
		State: "MA",
		Lat:   42.35,
		Lon:   -71.13,
	}

	msg := serializeToMessage(rec)

	assert.Equal(t, []byte("02134"), msg.Key)
	assert.Equal(t, "02134,PO_BOX,ALLSTON,MA,42.349998,-71.129997", string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "kind", msg.Headers[0].Key)
	assert.Equal(t, []byte("PO_BOX"), msg.Headers[0].Value)
	assert.Equal(t, "state", msg.Headers[1].Key)
	assert.Equal(t, []byte("MA"), msg.Headers[1].Value)
}

func TestSerializeToMessage_ParsesBack(t *testing.T) {
	rec := zipcode.Record{Zip: "00601", Kind: zipcode.KindStandard, City: "ADJUNTAS", State: "PR", Lat: 18.18, Lon: -66.75}

	got, err := zipcode.Parse(zipcode.Simplified, string(serializeToMessage(rec).Value))
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestWriter_LoadBatchEmpty(t *testing.T) {
	w := NewWriter(&config.Config{KafkaBrokers: []string{"localhost:1"}, KafkaExportTopic: "zips"}, slog.Default())
	t.Cleanup(func() { _ = w.Close() })

	// No records means no connection attempt.
	require.NoError(t, w.LoadBatch(context.Background(), nil))
}
