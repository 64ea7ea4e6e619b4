package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// echoCore answers every request with its own payload until the bus closes.
func echoCore(bus *EventBus) {
	for event := range bus.UIToCore() {
		req, ok := event.(*Request)
		if !ok {
			continue
		}
		if req.Command == "fail" {
			req.Reply(nil, &RemoteError{Command: req.Command, Message: "boom"})
			continue
		}
		var payload map[string]any
		if err := req.Decode(&payload); err != nil {
			req.Reply(nil, err)
			continue
		}
		req.Reply(payload, nil)
	}
}

func TestInvokeRoundTrip(t *testing.T) {
	bus := NewEventBus()
	go echoCore(bus)
	defer bus.Close()

	data, err := bus.Invoke(context.Background(), "echo", map[string]string{"path": "/tmp"})
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "/tmp", got["path"])
}

func TestInvokeRemoteError(t *testing.T) {
	bus := NewEventBus()
	go echoCore(bus)
	defer bus.Close()

	_, err := bus.Invoke(context.Background(), "fail", nil)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "boom", remote.Error())
}

func TestInvokeHonorsContext(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := bus.Invoke(ctx, "never_answered", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	event := <-bus.UIToCore()
	req := event.(*Request)
	assert.False(t, req.Deadline.IsZero())
	req.Reply("late", nil)
}

func TestInvokeAfterCloseFails(t *testing.T) {
	bus := NewEventBus()
	bus.Close()
	bus.Close()

	_, err := bus.Invoke(context.Background(), "echo", nil)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, bus.SendToUI(DirectoryChangedEvent{Path: "/"}), ErrClosed)
}

func TestSendToUIFullChannelTripsBreaker(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	var reported []EventBusError
	bus.SetErrorCallback(func(err EventBusError) {
		reported = append(reported, err)
	})

	for i := 0; i < cap(bus.coreToUI); i++ {
		require.NoError(t, bus.SendToUI(TreeInvalidatedEvent{Path: "/w"}))
	}
	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, bus.SendToUI(TreeInvalidatedEvent{Path: "/w"}), ErrCoreToUIFull)
	}

	assert.Equal(t, CircuitOpen, bus.GetCircuitBreakerState())
	assert.ErrorIs(t, bus.SendToUI(TreeInvalidatedEvent{Path: "/w"}), ErrCircuitOpen)
	require.NotEmpty(t, reported)
	assert.Equal(t, "SendToUI", reported[0].Operation)
}

func TestCircuitBreakerHalfOpen(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(2, time.Second)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.False(t, cb.IsOpen())
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	now = now.Add(2 * time.Second)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())

	now = now.Add(2 * time.Second)
	cb.IsOpen()
	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestReplyIsDeliveredOnce(t *testing.T) {
	req := &Request{Command: "x", reply: make(chan Response, 1)}
	req.Reply("first", nil)
	req.Reply("second", nil)

	resp := <-req.reply
	assert.JSONEq(t, `"first"`, string(resp.Data))
	assert.NoError(t, resp.Err)
	assert.True(t, errors.Is(EventBusError{Err: ErrClosed}, ErrClosed))
}
