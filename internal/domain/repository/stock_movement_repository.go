package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// StockLevel devuelve Σ IN − Σ OUT del SKU; 0 si no tiene movimientos.
	StockLevel(ctx context.Context, sku string) (int64, error)
	// ListBySKU devuelve los movimientos del SKU en orden de registro.
	ListBySKU(ctx context.Context, sku string) ([]*entity.StockMovement, error)
}
