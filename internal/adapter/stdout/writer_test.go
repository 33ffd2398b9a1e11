package stdout

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/statewise-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriter_Load(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	report := domain.StatewiseReport{
		Day:   "2020-04-01",
		Total: domain.Counts{Confirmed: 100, Recovered: 50, Deaths: 10, Active: 40},
		Statewise: []domain.StateRecord{
			{State: "Jammu & Kashmir", Counts: domain.Counts{Confirmed: 60, Recovered: 30, Deaths: 5, Active: 25}},
			{State: "StateB", Counts: domain.Counts{Confirmed: 40, Recovered: 20, Deaths: 5, Active: 15}},
		},
	}

	require.NoError(t, w.Load(context.Background(), report))

	assert.Equal(t,
		`{"day":"2020-04-01","total":{"confirmed":100,"recovered":50,"deaths":10,"active":40},"statewise":[`+
			`{"state":"Jammu & Kashmir","confirmed":60,"recovered":30,"deaths":5,"active":25},`+
			`{"state":"StateB","confirmed":40,"recovered":20,"deaths":5,"active":15}]}`+"\n",
		buf.String())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestWriter_LoadError(t *testing.T) {
	err := NewWriter(failingWriter{}).Load(context.Background(), domain.StatewiseReport{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode report")
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestWriter_Name(t *testing.T) {
	assert.Equal(t, "stdout", NewWriter(&bytes.Buffer{}).Name())
}
