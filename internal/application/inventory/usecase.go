package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// LedgerUseCase registra movimientos en el libro de stock de forma transaccional.
// La fila del producto se bloquea (SELECT FOR UPDATE) antes de calcular el stock, así dos salidas
// concurrentes del mismo SKU no pueden leer el mismo saldo.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
	}
}

// MovementInput entrada para registrar un movimiento. Type admite minúsculas y espacios.
type MovementInput struct {
	SKU      string
	Type     string
	Quantity int64
	Reason   string
}

// RecordMovement valida y agrega exactamente un movimiento dentro de su propia transacción.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		mov, err = uc.RecordMovementInTx(ctx, productRepo, movRepo, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordMovementInTx aplica las reglas del libro usando los repositorios del caller (misma transacción).
// Orden de validación: cantidad, tipo, SKU existente y, para OUT, stock suficiente antes de insertar.
// Si retorna error, el caller debe hacer rollback.
func (uc *LedgerUseCase) RecordMovementInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	in MovementInput,
) (*entity.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	movType, err := entity.ParseMovementType(in.Type)
	if err != nil {
		return nil, err
	}
	sku := strings.TrimSpace(in.SKU)
	product, err := productRepo.GetBySKUForUpdate(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownSKU
	}
	if movType == entity.MovementTypeOUT {
		current, err := movRepo.StockLevel(ctx, sku)
		if err != nil {
			return nil, err
		}
		if in.Quantity > current {
			return nil, &domain.InsufficientStockError{SKU: sku, Current: current, Requested: in.Quantity}
		}
	}
	mov := &entity.StockMovement{
		SKU:      sku,
		Type:     movType,
		Quantity: in.Quantity,
		Reason:   strings.TrimSpace(in.Reason),
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// GetStockLevel devuelve Σ IN − Σ OUT del SKU (0 si no hay movimientos). No verifica que el producto exista.
func (uc *LedgerUseCase) GetStockLevel(ctx context.Context, sku string) (int64, error) {
	return uc.movRepo.StockLevel(ctx, strings.TrimSpace(sku))
}

// GetStockCard devuelve el kárdex del SKU: movimientos en orden con saldo acumulado.
func (uc *LedgerUseCase) GetStockCard(ctx context.Context, sku string) ([]inventory.CardEntry, error) {
	sku = strings.TrimSpace(sku)
	product, err := uc.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownSKU
	}
	movements, err := uc.movRepo.ListBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return inventory.StockCard(movements), nil
}
