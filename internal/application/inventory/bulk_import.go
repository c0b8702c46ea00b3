package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BulkImportUseCase registra varios productos con su stock inicial, omitiendo los SKU ya existentes.
type BulkImportUseCase struct {
	txRunner TxRunner
	ledger   *LedgerUseCase
}

// NewBulkImportUseCase construye el caso de uso.
func NewBulkImportUseCase(txRunner TxRunner, ledger *LedgerUseCase) *BulkImportUseCase {
	return &BulkImportUseCase{txRunner: txRunner, ledger: ledger}
}

// BulkEntry una fila de importación: producto y cantidad inicial.
type BulkEntry struct {
	SKU        string
	Name       string
	Price      decimal.Decimal
	InitialQty int64
}

// BulkResult resultado de la importación.
type BulkResult struct {
	Added   int
	Skipped []string
}

// BulkRegister valida todas las filas antes de escribir y luego procesa cada una en su propia transacción:
// un SKU repetido se omite sin abortar el lote.
func (uc *BulkImportUseCase) BulkRegister(ctx context.Context, entries []BulkEntry) (*BulkResult, error) {
	products := make([]*entity.Product, len(entries))
	for i, e := range entries {
		p, err := newProduct(RegisterProductInput{SKU: e.SKU, Name: e.Name, Price: e.Price})
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+1, err)
		}
		if e.InitialQty < 0 {
			return nil, fmt.Errorf("fila %d: %w: cantidad inicial negativa", i+1, domain.ErrInvalidInput)
		}
		products[i] = p
	}

	result := &BulkResult{Skipped: []string{}}
	for i, product := range products {
		qty := entries[i].InitialQty
		err := uc.txRunner.Run(ctx, func(
			productRepo repository.ProductRepository,
			movRepo repository.StockMovementRepository,
		) error {
			existing, err := productRepo.GetBySKU(ctx, product.SKU)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrDuplicateSKU
			}
			if err := productRepo.Create(ctx, product); err != nil {
				return err
			}
			if qty == 0 {
				return nil
			}
			_, err = uc.ledger.RecordMovementInTx(ctx, productRepo, movRepo, MovementInput{
				SKU:      product.SKU,
				Type:     string(entity.MovementTypeIN),
				Quantity: qty,
				Reason:   inventory.InitialStockReason,
			})
			return err
		})
		if errors.Is(err, domain.ErrDuplicateSKU) {
			result.Skipped = append(result.Skipped, product.SKU)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("importar %s: %w", product.SKU, err)
		}
		result.Added++
	}
	return result, nil
}
