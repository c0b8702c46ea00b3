package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/rs/zerolog"
)

// CreateOrderUseCase crea pedidos y descuenta el stock en una sola transacción.
type CreateOrderUseCase struct {
	txRunner  OrderTxRunner
	ledger    StockLedger
	orderRepo repository.OrderRepository
	publisher EventPublisher
	log       zerolog.Logger
}

// NewCreateOrderUseCase construye el caso de uso. publisher puede ser nil.
func NewCreateOrderUseCase(
	txRunner OrderTxRunner,
	ledger StockLedger,
	orderRepo repository.OrderRepository,
	publisher EventPublisher,
	log zerolog.Logger,
) *CreateOrderUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &CreateOrderUseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		orderRepo: orderRepo,
		publisher: publisher,
		log:       log,
	}
}

// CreateOrderInput cliente y líneas solicitadas (pueden repetir SKU).
type CreateOrderInput struct {
	CustomerName string
	Lines        []entity.OrderLine
}

// CreateOrder valida todas las líneas contra el estado previo al pedido y, solo si todas pasan,
// guarda cabecera, ítems y salidas de stock. Cualquier error revierte la transacción completa.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (int64, error) {
	if len(in.Lines) == 0 {
		return 0, domain.ErrEmptyOrder
	}
	customer := strings.TrimSpace(in.CustomerName)
	if customer == "" {
		return 0, fmt.Errorf("%w: el nombre del cliente es requerido", domain.ErrInvalidInput)
	}
	lines := domaininv.MergeLines(in.Lines)

	var order *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		// 1) Bloquear los productos en orden de SKU y validar todas las líneas antes de escribir.
		products, err := lockProducts(ctx, productRepo, lines)
		if err != nil {
			return err
		}
		if err := checkLines(ctx, movRepo, lines, products); err != nil {
			return err
		}

		// 2) Cabecera
		order = &entity.Order{
			CustomerName: customer,
			Status:       entity.OrderStatusCreated,
			CreatedAt:    time.Now(),
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		// 3) Ítems con precio congelado + salida de stock por línea
		for _, l := range lines {
			item := &entity.OrderItem{
				OrderID:      order.ID,
				SKU:          l.SKU,
				Quantity:     l.Quantity,
				PriceAtOrder: products[l.SKU].Price,
			}
			if err := orderRepo.CreateItem(ctx, item); err != nil {
				return err
			}
			order.Items = append(order.Items, item)
			if _, err := uc.ledger.RecordMovementInTx(ctx, productRepo, movRepo, inventory.MovementInput{
				SKU:      l.SKU,
				Type:     string(entity.MovementTypeOUT),
				Quantity: l.Quantity,
				Reason:   domaininv.OrderReason(order.ID),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.publish(ctx, Event{
		Type:       EventOrderCreated,
		OrderID:    order.ID,
		Status:     order.Status,
		Lines:      eventLines(order.Items),
		OccurredAt: time.Now(),
	})
	return order.ID, nil
}

// lockProducts toma FOR UPDATE sobre cada producto en orden de SKU, el mismo orden que usa la cancelación.
// Los SKU inexistentes quedan fuera del mapa.
func lockProducts(
	ctx context.Context,
	productRepo repository.ProductRepository,
	lines []entity.OrderLine,
) (map[string]*entity.Product, error) {
	skus := make([]string, 0, len(lines))
	for _, l := range lines {
		skus = append(skus, l.SKU)
	}
	sort.Strings(skus)

	products := make(map[string]*entity.Product, len(skus))
	for _, sku := range skus {
		product, err := productRepo.GetBySKUForUpdate(ctx, sku)
		if err != nil {
			return nil, err
		}
		if product != nil {
			products[sku] = product
		}
	}
	return products, nil
}

// checkLines valida cada línea en el orden del pedido: cantidad, SKU existente y stock suficiente.
// El primer error gana.
func checkLines(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	lines []entity.OrderLine,
	products map[string]*entity.Product,
) error {
	for _, l := range lines {
		if l.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if products[l.SKU] == nil {
			return fmt.Errorf("%w: %s", domain.ErrUnknownSKU, l.SKU)
		}
		current, err := movRepo.StockLevel(ctx, l.SKU)
		if err != nil {
			return err
		}
		if l.Quantity > current {
			return &domain.InsufficientStockError{SKU: l.SKU, Current: current, Requested: l.Quantity}
		}
	}
	return nil
}

// GetOrder devuelve la cabecera con sus ítems en orden de registro.
func (uc *CreateOrderUseCase) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	items, err := uc.orderRepo.GetItemsByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (uc *CreateOrderUseCase) publish(ctx context.Context, evt Event) {
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.log.Error().Err(err).
			Str("event", evt.Type).
			Int64("order_id", evt.OrderID).
			Msg("publicar evento de pedido")
	}
}
