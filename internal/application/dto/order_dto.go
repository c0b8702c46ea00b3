package dto

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderLineRequest línea solicitada.
type OrderLineRequest struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Items        []OrderLineRequest `json:"items"`
}

// CreateOrderResponse id del pedido creado.
type CreateOrderResponse struct {
	ID int64 `json:"id"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Quantity     int64           `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido con sus ítems.
type OrderResponse struct {
	ID           int64               `json:"id"`
	CustomerName string              `json:"customer_name"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	Total        decimal.Decimal     `json:"total"`
	Items        []OrderItemResponse `json:"items"`
}

// Lines convierte el request en líneas de dominio (sin fusionar).
func (r CreateOrderRequest) Lines() []entity.OrderLine {
	lines := make([]entity.OrderLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, entity.OrderLine{SKU: it.SKU, Quantity: it.Quantity})
	}
	return lines
}

// ToOrderResponse mapea la entidad.
func ToOrderResponse(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		Total:        o.Total(),
		Items:        make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:           it.ID,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
			Subtotal:     it.Subtotal(),
		})
	}
	return resp
}
