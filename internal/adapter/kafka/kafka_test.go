package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/couchcryptid/statewise-etl/internal/domain"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSource = "covid19india.org"

type fakeMessageWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeMessageWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeMessageWriter) Close() error {
	f.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testReport() domain.StatewiseReport {
	return domain.StatewiseReport{
		Day:   "2020-04-01",
		Total: domain.Counts{Confirmed: 100, Recovered: 50, Deaths: 10, Active: 40},
		Statewise: []domain.StateRecord{
			{State: "StateA", Counts: domain.Counts{Confirmed: 60, Recovered: 30, Deaths: 5, Active: 25}},
		},
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2020, 4, 2, 6, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	defer domain.SetClock(nil)

	msg, err := serializeToMessage(testReport(), testSource)
	require.NoError(t, err)

	assert.Equal(t, []byte("cached_unofficial_src_covid19india.org_statewise/2020-04-01"), msg.Key)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "source", msg.Headers[0].Key)
	assert.Equal(t, []byte(testSource), msg.Headers[0].Value)
	assert.Equal(t, "day", msg.Headers[1].Key)
	assert.Equal(t, []byte("2020-04-01"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)

	var env domain.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.True(t, env.Success)
	assert.Equal(t, testSource, env.Data.Source)
	assert.Equal(t, testReport(), env.Data.StatewiseReport)
	assert.Equal(t, now, env.LastOriginUpdate)
}

func TestWriter_Load(t *testing.T) {
	fake := &fakeMessageWriter{}
	w := &Writer{writer: fake, source: testSource, logger: discardLogger()}

	require.NoError(t, w.Load(context.Background(), testReport()))
	require.Len(t, fake.msgs, 1)
	assert.Equal(t, "cached_unofficial_src_covid19india.org_statewise/2020-04-01", string(fake.msgs[0].Key))

	require.NoError(t, w.Close())
	assert.True(t, fake.closed)
	assert.Equal(t, "kafka", w.Name())
}

func TestWriter_LoadError(t *testing.T) {
	fake := &fakeMessageWriter{err: errors.New("leader not available")}
	w := &Writer{writer: fake, source: testSource, logger: discardLogger()}

	err := w.Load(context.Background(), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
	assert.Contains(t, err.Error(), "2020-04-01")
}

func TestWriter_CheckReadiness_NoBrokers(t *testing.T) {
	w := &Writer{writer: &fakeMessageWriter{}, logger: discardLogger()}
	err := w.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no kafka brokers")
}

func TestWriter_CheckReadiness_Unreachable(t *testing.T) {
	// Grab a free port and release it so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	w := &Writer{writer: &fakeMessageWriter{}, brokers: []string{addr}, logger: discardLogger()}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = w.CheckReadiness(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka unreachable")
}
