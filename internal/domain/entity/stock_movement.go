package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// MovementType tipo de movimiento del libro de stock.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  MovementType = "IN"  // entrada
	MovementTypeOUT MovementType = "OUT" // salida
)

// ParseMovementType normaliza (trim + mayúsculas) y valida el tipo de movimiento.
func ParseMovementType(s string) (MovementType, error) {
	t := MovementType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case MovementTypeIN, MovementTypeOUT:
		return t, nil
	}
	return "", domain.ErrInvalidMovementType
}

// StockMovement es una entrada del libro de stock. Solo se agregan; nunca se actualizan ni eliminan.
type StockMovement struct {
	ID        int64
	SKU       string
	Type      MovementType
	Quantity  int64 // siempre > 0; el signo lo da Type
	Reason    string
	CreatedAt time.Time
}

// Signed devuelve la cantidad con signo: positiva para IN, negativa para OUT.
func (m *StockMovement) Signed() int64 {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
