package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. La identidad es el SKU; no se modifica tras el registro.
type Product struct {
	ID        int64
	SKU       string // único, sin espacios al inicio/fin
	Name      string
	Price     decimal.Decimal // precio de venta vigente
	CreatedAt time.Time
}

// ProductStock empareja un producto con su stock calculado desde el libro de movimientos.
type ProductStock struct {
	Product *Product
	Stock   int64
}
