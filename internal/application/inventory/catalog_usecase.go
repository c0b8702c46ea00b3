package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CatalogUseCase registra y lista productos. El stock no se guarda en el producto; se calcula desde el libro.
type CatalogUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{txRunner: txRunner, productRepo: productRepo}
}

// RegisterProductInput datos de un producto nuevo.
type RegisterProductInput struct {
	SKU   string
	Name  string
	Price decimal.Decimal
}

// RegisterProduct inserta un producto nuevo sin efecto en el stock.
func (uc *CatalogUseCase) RegisterProduct(ctx context.Context, in RegisterProductInput) (*entity.Product, error) {
	product, err := newProduct(in)
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts devuelve los productos en orden de inserción con su stock calculado.
// Se lee dentro de una transacción para que productos y saldos sean del mismo instante.
func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]entity.ProductStock, error) {
	var out []entity.ProductStock
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		products, err := productRepo.List(ctx)
		if err != nil {
			return err
		}
		out = make([]entity.ProductStock, 0, len(products))
		for _, p := range products {
			level, err := movRepo.StockLevel(ctx, p.SKU)
			if err != nil {
				return err
			}
			out = append(out, entity.ProductStock{Product: p, Stock: level})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// newProduct normaliza y valida los datos de entrada.
func newProduct(in RegisterProductInput) (*entity.Product, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku y nombre son requeridos", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	// La columna es NUMERIC(14,2) y redondearía en silencio.
	if !in.Price.Equal(in.Price.Round(2)) {
		return nil, fmt.Errorf("%w: el precio admite máximo 2 decimales", domain.ErrInvalidInput)
	}
	return &entity.Product{SKU: sku, Name: name, Price: in.Price}, nil
}
