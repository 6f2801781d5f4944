package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	subject string
	data    []byte
	err     error
}

func (r *recordingConn) Publish(subject string, data []byte) error {
	r.subject = subject
	r.data = data
	return r.err
}

func TestPublisher_PublishJSON(t *testing.T) {
	conn := &recordingConn{}
	p := NewPublisher(conn, "ppg.bpm")
	require.NoError(t, p.PublishJSON(map[string]any{"bpm": 72.5}))
	assert.Equal(t, "ppg.bpm", conn.subject)
	assert.JSONEq(t, `{"bpm":72.5}`, string(conn.data))
	assert.Equal(t, "ppg.bpm", p.Subject())
}

func TestPublisher_Errors(t *testing.T) {
	boom := errors.New("boom")
	p := NewPublisher(&recordingConn{err: boom}, "s")
	assert.ErrorIs(t, p.PublishJSON(1), boom)

	err := NewPublisher(&recordingConn{}, "s").PublishJSON(make(chan int))
	assert.ErrorContains(t, err, "encode message")
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect("nats://127.0.0.1:1")
	assert.Error(t, err)
}
