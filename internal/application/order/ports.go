package order

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción que incluye repos de catálogo, libro y pedidos.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// StockLedger integra pedidos con el libro de stock.
// RecordMovementInTx agrega un movimiento usando los repositorios del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
type StockLedger interface {
	RecordMovementInTx(
		ctx context.Context,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		in inventory.MovementInput,
	) (*entity.StockMovement, error)
}

// EventPublisher publica eventos de pedido después del commit. Un fallo no revierte el pedido.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// PackingSlipGenerator genera el PDF de despacho de un pedido.
type PackingSlipGenerator interface {
	GeneratePackingSlip(ctx context.Context, order *entity.Order, productNames map[string]string) ([]byte, error)
}
