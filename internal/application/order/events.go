package order

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Tipos de evento de pedido.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// Event notificación de un cambio ya confirmado en un pedido.
type Event struct {
	Type           string             `json:"type"`
	OrderID        int64              `json:"order_id"`
	Status         entity.OrderStatus `json:"status"`
	PreviousStatus entity.OrderStatus `json:"previous_status,omitempty"`
	Lines          []EventLine        `json:"lines,omitempty"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// NopPublisher descarta los eventos (sin broker configurado).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// EventLine línea de pedido incluida en el evento.
type EventLine struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

func eventLines(items []*entity.OrderItem) []EventLine {
	lines := make([]EventLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, EventLine{SKU: it.SKU, Quantity: it.Quantity})
	}
	return lines
}
