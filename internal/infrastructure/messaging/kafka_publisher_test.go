package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apporder "github.com/jhoicas/inventario-ledger/internal/application/order"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w, zerolog.Nop())

	evt := apporder.Event{
		Type:       apporder.EventOrderCreated,
		OrderID:    42,
		Status:     entity.OrderStatusCreated,
		Lines:      []apporder.EventLine{{SKU: "A-1", Quantity: 3}},
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), evt))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, apporder.EventOrderCreated, headerValue(msg, "event_type"))
	assert.NotEmpty(t, headerValue(msg, "event_id"))

	var decoded apporder.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, evt.OrderID, decoded.OrderID)
	assert.Equal(t, evt.Lines, decoded.Lines)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_ErrorDelWriter(t *testing.T) {
	boom := errors.New("broker caído")
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: boom}, zerolog.Nop())

	err := p.Publish(context.Background(), apporder.Event{Type: apporder.EventOrderStatusChanged, OrderID: 1})
	assert.ErrorIs(t, err, boom)
}

func TestNewKafkaPublisher_SinBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(config.KafkaConfig{}, zerolog.Nop())
	assert.Error(t, err)
}
