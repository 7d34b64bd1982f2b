package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus(nil)

	var received *Event
	var callCount int

	bus.Subscribe(func(event *Event) error {
		received = event
		callCount++
		return nil
	}, "test_event")

	err := bus.PublishJSON("test_event", map[string]string{"foo": "bar"})
	require.NoError(t, err)

	assert.Equal(t, 1, callCount)
	assert.Equal(t, "test_event", received.Type)
	assert.False(t, received.CreatedAt.IsZero())

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(received.Payload, &decoded))
	assert.Equal(t, "bar", decoded["foo"])
}

func TestEventBusMultipleTypesAndSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	var count1, count2 int

	bus.Subscribe(func(_ *Event) error { count1++; return nil }, "a", "b")
	bus.Subscribe(func(_ *Event) error { count2++; return nil }, "a")

	bus.Publish(&Event{Type: "a"})
	bus.Publish(&Event{Type: "b"})

	assert.Equal(t, 2, count1)
	assert.Equal(t, 1, count2)
}

func TestEventBusHandlerErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	bus := NewEventBus(&logger)

	var secondCalled bool
	bus.Subscribe(func(_ *Event) error { return errors.New("boom") }, "x")
	bus.Subscribe(func(_ *Event) error { secondCalled = true; return nil }, "x")

	bus.Publish(&Event{Type: "x"})

	assert.True(t, secondCalled)
	assert.Contains(t, buf.String(), "boom")
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	bus.Publish(&Event{Type: "unknown"})
	assert.NoError(t, bus.PublishJSON("unknown", nil))

	var nilBus *EventBus
	assert.NoError(t, nilBus.PublishJSON("unknown", nil))
}

func TestRegisterBookingAudit(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	bus := NewEventBus(&logger)
	RegisterBookingAudit(bus, &logger)

	err := bus.PublishJSON(EventBookingApproved, BookingEventPayload{BookingID: 42, Status: "APPROVED"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"booking_id":42`)
	assert.Contains(t, buf.String(), `"event":"booking_approved"`)

	// malformed payloads surface as handler failures
	bus.Publish(&Event{Type: EventBookingCreated, Payload: []byte("{")})
	assert.Contains(t, buf.String(), "decode booking_created payload")
}
