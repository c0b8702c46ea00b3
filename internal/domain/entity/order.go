package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de un pedido.
type OrderStatus string

// Estados de pedido. CREATED es el único estado inicial; DISPATCHED y CANCELLED son terminales.
const (
	OrderStatusCreated    OrderStatus = "CREATED"
	OrderStatusPacked     OrderStatus = "PACKED"
	OrderStatusDispatched OrderStatus = "DISPATCHED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// orderTransitions tabla de transiciones permitidas: estado actual -> estados destino.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:    {OrderStatusPacked, OrderStatusCancelled},
	OrderStatusPacked:     {OrderStatusDispatched, OrderStatusCancelled},
	OrderStatusDispatched: {},
	OrderStatusCancelled:  {},
}

// ParseOrderStatus normaliza (trim + mayúsculas) y valida un estado.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := orderTransitions[st]; !ok {
		return "", domain.ErrInvalidStatus
	}
	return st, nil
}

// AllowedTargets devuelve los estados alcanzables desde s.
func (s OrderStatus) AllowedTargets() []OrderStatus {
	return orderTransitions[s]
}

// CanTransitionTo indica si la tabla permite pasar de s a next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado no tiene transiciones de salida.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order cabecera de un pedido con sus líneas. El conjunto de ítems es fijo tras la creación.
type Order struct {
	ID           int64
	CustomerName string
	Status       OrderStatus
	CreatedAt    time.Time
	Items        []*OrderItem
}

// Total suma cantidad * precio congelado de cada ítem.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// OrderItem línea de pedido; PriceAtOrder es el precio del catálogo al momento de crear el pedido.
type OrderItem struct {
	ID           int64
	OrderID      int64
	SKU          string
	Quantity     int64
	PriceAtOrder decimal.Decimal
}

// Subtotal cantidad * precio congelado.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(i.Quantity))
}

// OrderLine línea solicitada (SKU, cantidad) antes de validar y fusionar.
type OrderLine struct {
	SKU      string
	Quantity int64
}
