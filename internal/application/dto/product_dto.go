package dto

import (
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para registrar un producto.
type CreateProductRequest struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductStockResponse producto con su stock calculado.
type ProductStockResponse struct {
	ProductResponse
	Stock int64 `json:"stock"`
}

// ProductListResponse lista de productos con stock.
type ProductListResponse struct {
	Items []ProductStockResponse `json:"items"`
	Total int                    `json:"total"`
}

// BulkProductEntry fila de importación masiva.
type BulkProductEntry struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	InitialQty int64           `json:"initial_qty"`
}

// BulkRegisterRequest body para POST /api/products/bulk.
type BulkRegisterRequest struct {
	Products []BulkProductEntry `json:"products"`
}

// BulkRegisterResponse resultado de la importación masiva.
type BulkRegisterResponse struct {
	Added   int      `json:"added"`
	Skipped []string `json:"skipped"`
}

// ToProductResponse mapea la entidad a la respuesta HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}

// ToProductListResponse mapea el listado con stock.
func ToProductListResponse(list []entity.ProductStock) ProductListResponse {
	out := ProductListResponse{Items: make([]ProductStockResponse, 0, len(list)), Total: len(list)}
	for _, ps := range list {
		out.Items = append(out.Items, ProductStockResponse{
			ProductResponse: ToProductResponse(ps.Product),
			Stock:           ps.Stock,
		})
	}
	return out
}

// ToBulkEntries convierte el request en entradas del caso de uso.
func (r BulkRegisterRequest) ToBulkEntries() []inventory.BulkEntry {
	entries := make([]inventory.BulkEntry, 0, len(r.Products))
	for _, p := range r.Products {
		entries = append(entries, inventory.BulkEntry{
			SKU:        p.SKU,
			Name:       p.Name,
			Price:      p.Price,
			InitialQty: p.InitialQty,
		})
	}
	return entries
}
