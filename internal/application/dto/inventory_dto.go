package dto

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// RecordMovementRequest body para POST /api/inventory/movements.
type RecordMovementRequest struct {
	SKU      string `json:"sku"`
	Type     string `json:"type"` // IN | OUT
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

// MovementResponse un movimiento del libro.
type MovementResponse struct {
	ID        int64     `json:"id"`
	SKU       string    `json:"sku"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// StockLevelResponse stock calculado de un SKU.
type StockLevelResponse struct {
	SKU   string `json:"sku"`
	Stock int64  `json:"stock"`
}

// StockCardEntry movimiento con saldo acumulado.
type StockCardEntry struct {
	MovementResponse
	Balance int64 `json:"balance"`
}

// StockCardResponse kárdex de un SKU.
type StockCardResponse struct {
	SKU       string           `json:"sku"`
	Stock     int64            `json:"stock"`
	Movements []StockCardEntry `json:"movements"`
}

// ToMovementResponse mapea la entidad.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		SKU:       m.SKU,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

// ToStockCardResponse mapea el kárdex; el stock es el saldo del último movimiento.
func ToStockCardResponse(sku string, card []inventory.CardEntry) StockCardResponse {
	out := StockCardResponse{SKU: sku, Movements: make([]StockCardEntry, 0, len(card))}
	for _, e := range card {
		out.Movements = append(out.Movements, StockCardEntry{
			MovementResponse: ToMovementResponse(e.Movement),
			Balance:          e.Balance,
		})
		out.Stock = e.Balance
	}
	return out
}
