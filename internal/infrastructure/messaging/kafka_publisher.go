// Package messaging publica los eventos de pedido en Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	apporder "github.com/jhoicas/inventario-ledger/internal/application/order"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

var _ apporder.EventPublisher = (*KafkaPublisher)(nil)

// MessageWriter es el subconjunto de *kafka.Writer que usa el publicador.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher serializa cada evento a JSON. La key es el id del pedido: los eventos de un
// mismo pedido van a la misma partición.
type KafkaPublisher struct {
	writer MessageWriter
	log    zerolog.Logger
}

// NewKafkaPublisher construye el writer a partir de la configuración.
func NewKafkaPublisher(cfg config.KafkaConfig, log zerolog.Logger) (*KafkaPublisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("kafka: no hay brokers configurados")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		BatchSize:    100,
		RequiredAcks: kafka.RequireAll,
		Transport:    &kafka.Transport{ClientID: cfg.ClientID},
	}
	return NewKafkaPublisherWithWriter(w, log), nil
}

// NewKafkaPublisherWithWriter permite inyectar un writer (tests).
func NewKafkaPublisherWithWriter(w MessageWriter, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, log: log}
}

// Publish envía el evento de forma síncrona.
func (p *KafkaPublisher) Publish(ctx context.Context, evt apporder.Event) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}
	eventID := uuid.NewString()
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(evt.OrderID, 10)),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar %s del pedido %d: %w", evt.Type, evt.OrderID, err)
	}
	p.log.Debug().
		Str("event_id", eventID).
		Str("type", evt.Type).
		Int64("order_id", evt.OrderID).
		Msg("evento publicado")
	return nil
}

// Close vacía el batch pendiente y cierra las conexiones.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
