package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// OrderRepository puerto de persistencia para pedidos y sus ítems.
// GetByID y GetByIDForUpdate devuelven (nil, nil) si el pedido no existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error)
	GetItemsByOrderID(ctx context.Context, orderID int64) ([]*entity.OrderItem, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error
}
