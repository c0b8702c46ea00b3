package order

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// PackingSlipUseCase genera el PDF de despacho (lista de empaque) de un pedido.
type PackingSlipUseCase struct {
	orders      *CreateOrderUseCase
	productRepo repository.ProductRepository
	generator   PackingSlipGenerator
}

// NewPackingSlipUseCase construye el caso de uso.
func NewPackingSlipUseCase(
	orders *CreateOrderUseCase,
	productRepo repository.ProductRepository,
	generator PackingSlipGenerator,
) *PackingSlipUseCase {
	return &PackingSlipUseCase{orders: orders, productRepo: productRepo, generator: generator}
}

// PackingSlip devuelve los bytes del PDF y el nombre de archivo sugerido.
// Retorna domain.ErrOrderNotFound si el pedido no existe.
func (uc *PackingSlipUseCase) PackingSlip(ctx context.Context, orderID int64) ([]byte, string, error) {
	o, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	names := make(map[string]string, len(o.Items))
	for _, it := range o.Items {
		p, err := uc.productRepo.GetBySKU(ctx, it.SKU)
		if err != nil {
			return nil, "", fmt.Errorf("packing slip: obtener producto %s: %w", it.SKU, err)
		}
		if p != nil {
			names[it.SKU] = p.Name
		}
	}
	pdf, err := uc.generator.GeneratePackingSlip(ctx, o, names)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("pedido-%d.pdf", o.ID), nil
}
