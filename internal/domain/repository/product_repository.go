package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) si el SKU no existe.
type ProductRepository interface {
	// Create inserta el producto y completa ID y CreatedAt. SKU repetido -> domain.ErrDuplicateSKU.
	Create(ctx context.Context, product *entity.Product) error
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetBySKUForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetBySKUForUpdate(ctx context.Context, sku string) (*entity.Product, error)
	// List devuelve todos los productos en orden de inserción.
	List(ctx context.Context) ([]*entity.Product, error)
}
