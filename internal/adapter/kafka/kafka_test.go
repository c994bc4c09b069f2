package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSerializeToMessage(t *testing.T) {
	loadedAt := time.Date(2013, 12, 1, 9, 0, 0, 0, time.UTC)
	rec := domain.StateRecord{
		State:           "Alabama",
		Abbreviation:    "AL",
		TotalCrashes:    756,
		TotalFatalities: 698,
	}

	msg, err := serializeToMessage(rec, 2012, loadedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("AL"), msg.Key)
	assert.Contains(t, string(msg.Value), `"state":"Alabama"`)
	assert.Contains(t, string(msg.Value), `"totalCrashes":756`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "dataset_year", msg.Headers[0].Key)
	assert.Equal(t, []byte("2012"), msg.Headers[0].Value)
	assert.Equal(t, "loaded_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2013-12-01T09:00:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_KeyFallsBackToName(t *testing.T) {
	msg, err := serializeToMessage(domain.StateRecord{State: "USA"}, 2012, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []byte("USA"), msg.Key)
}

func TestWriter_Load(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2013, 12, 1, 9, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: discardLogger()}
	ds := domain.NewDataset(2012, []domain.StateRecord{
		{State: "Alabama", Abbreviation: "AL"},
		{State: "Alaska", Abbreviation: "AK"},
		{State: "USA"},
	})

	require.NoError(t, w.Load(context.Background(), ds))
	require.Len(t, fw.msgs, 3)
	assert.Equal(t, []byte("AL"), fw.msgs[0].Key)
	assert.Equal(t, []byte("AK"), fw.msgs[1].Key)
	assert.Equal(t, []byte("USA"), fw.msgs[2].Key)
	assert.Equal(t, []byte("2013-12-01T09:00:00Z"), fw.msgs[2].Headers[1].Value)

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
}

func TestWriter_LoadEmpty(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: discardLogger()}
	require.NoError(t, w.Load(context.Background(), domain.NewDataset(2012, nil)))
	require.NoError(t, w.Load(context.Background(), nil))
	assert.Empty(t, fw.msgs)
}

func TestWriter_LoadError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("leader not available")}
	w := &Writer{writer: fw, logger: discardLogger()}
	ds := domain.NewDataset(2012, []domain.StateRecord{{State: "Alabama", Abbreviation: "AL"}})

	err := w.Load(context.Background(), ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}
