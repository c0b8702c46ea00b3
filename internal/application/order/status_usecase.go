package order

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/rs/zerolog"
)

// StatusUseCase aplica la máquina de estados del pedido. Solo CANCELLED tiene efecto en el stock:
// devuelve al libro lo que el pedido había descontado.
type StatusUseCase struct {
	txRunner  OrderTxRunner
	ledger    StockLedger
	publisher EventPublisher
	log       zerolog.Logger
}

// NewStatusUseCase construye el caso de uso. publisher puede ser nil.
func NewStatusUseCase(txRunner OrderTxRunner, ledger StockLedger, publisher EventPublisher, log zerolog.Logger) *StatusUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &StatusUseCase{txRunner: txRunner, ledger: ledger, publisher: publisher, log: log}
}

// UpdateOrderStatus valida el estado pedido contra la tabla de transiciones y lo aplica.
// Al cancelar, las entradas compensatorias y el cambio de estado se confirman en la misma transacción.
func (uc *StatusUseCase) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus string) (*entity.Order, error) {
	next, err := entity.ParseOrderStatus(newStatus)
	if err != nil {
		return nil, err
	}

	var order *entity.Order
	var previous entity.OrderStatus
	err = uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		o, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}
		if !o.Status.CanTransitionTo(next) {
			return &domain.IllegalTransitionError{From: string(o.Status), To: string(next)}
		}
		items, err := orderRepo.GetItemsByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		o.Items = items

		if next == entity.OrderStatusCancelled {
			// Mismo orden de bloqueo por SKU que CreateOrder.
			for _, it := range sortedBySKU(items) {
				if _, err := uc.ledger.RecordMovementInTx(ctx, productRepo, movRepo, inventory.MovementInput{
					SKU:      it.SKU,
					Type:     string(entity.MovementTypeIN),
					Quantity: it.Quantity,
					Reason:   domaininv.OrderCancelReason(orderID),
				}); err != nil {
					return err
				}
			}
		}
		if err := orderRepo.UpdateStatus(ctx, orderID, next); err != nil {
			return err
		}
		previous = o.Status
		o.Status = next
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	evt := Event{
		Type:           EventOrderStatusChanged,
		OrderID:        order.ID,
		Status:         order.Status,
		PreviousStatus: previous,
		OccurredAt:     time.Now(),
	}
	if next == entity.OrderStatusCancelled {
		evt.Lines = eventLines(order.Items)
	}
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.log.Error().Err(err).
			Str("event", evt.Type).
			Int64("order_id", order.ID).
			Msg("publicar evento de pedido")
	}
	return order, nil
}

func sortedBySKU(items []*entity.OrderItem) []*entity.OrderItem {
	sorted := make([]*entity.OrderItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SKU < sorted[j].SKU })
	return sorted
}
