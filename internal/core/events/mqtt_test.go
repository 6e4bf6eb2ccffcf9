package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doneToken struct {
	err error
	ch  chan struct{}
}

func newToken(err error) *doneToken {
	ch := make(chan struct{})
	close(ch)
	return &doneToken{err: err, ch: ch}
}

func (t *doneToken) Wait() bool                     { return true }
func (t *doneToken) WaitTimeout(time.Duration) bool { return true }
func (t *doneToken) Done() <-chan struct{}          { return t.ch }
func (t *doneToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient 只实现 Publish / Disconnect
type fakeClient struct {
	pahomqtt.Client
	mu     sync.Mutex
	out    []published
	failOn string
	closed bool
}

func (f *fakeClient) Publish(topic string, qos byte, _ bool, payload any) pahomqtt.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	if topic == f.failOn {
		return newToken(errors.New("not authorized"))
	}
	f.out = append(f.out, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return newToken(nil)
}

func (f *fakeClient) Disconnect(uint) { f.closed = true }

func TestMQTTPublishTopicsAndPayload(t *testing.T) {
	fc := &fakeClient{}
	m := NewMQTTWithClient(fc, "plantya/", 1, nil)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := m.Publish(context.Background(),
		Event{Type: Deleted, Resource: "cluster", ID: "C1", At: at},
		Event{Type: Deleted, Resource: "device", ID: "D1", At: at, Cause: "cluster/C1"},
	)
	require.NoError(t, err)
	require.Len(t, fc.out, 2)
	assert.Equal(t, "plantya/cluster/deleted", fc.out[0].topic)
	assert.Equal(t, "plantya/device/deleted", fc.out[1].topic)
	assert.Equal(t, byte(1), fc.out[1].qos)

	var got Event
	require.NoError(t, json.Unmarshal(fc.out[1].payload, &got))
	assert.Equal(t, "cluster/C1", got.Cause)
	assert.True(t, at.Equal(got.At))

	m.Close()
	assert.True(t, fc.closed)
}

func TestMQTTPublishJoinsErrors(t *testing.T) {
	fc := &fakeClient{failOn: "p/user/created"}
	m := NewMQTTWithClient(fc, "p", 0, nil)

	err := m.Publish(context.Background(),
		Event{Type: Created, Resource: "user", ID: "U00001"},
		Event{Type: Updated, Resource: "user", ID: "U00001"},
	)
	assert.ErrorContains(t, err, "not authorized")
	assert.Len(t, fc.out, 1)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_ = r.Publish(context.Background(), Event{Type: Created}, Event{Type: Deleted}, Event{Type: Deleted})
	assert.Len(t, r.Events(), 3)
	assert.Len(t, r.Of(Deleted), 2)
}
