// Package inventory contiene las reglas puras del libro de stock: el stock nunca se guarda,
// se deriva sumando los movimientos.
package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// InitialStockReason motivo de la entrada inicial en la importación masiva.
const InitialStockReason = "initial stock"

// OrderReason motivo de las salidas generadas al crear el pedido id.
func OrderReason(orderID int64) string {
	return fmt.Sprintf("order:%d", orderID)
}

// OrderCancelReason motivo de las entradas compensatorias al cancelar el pedido id.
func OrderCancelReason(orderID int64) string {
	return fmt.Sprintf("order_cancel:%d", orderID)
}

// StockLevel calcula Σ IN − Σ OUT sobre los movimientos dados (todos del mismo SKU).
func StockLevel(movements []*entity.StockMovement) int64 {
	var level int64
	for _, m := range movements {
		level += m.Signed()
	}
	return level
}

// CardEntry movimiento del kárdex con el saldo acumulado tras aplicarlo.
type CardEntry struct {
	Movement *entity.StockMovement
	Balance  int64
}

// StockCard recorre los movimientos en orden y acumula el saldo de cada uno.
func StockCard(movements []*entity.StockMovement) []CardEntry {
	card := make([]CardEntry, 0, len(movements))
	var balance int64
	for _, m := range movements {
		balance += m.Signed()
		card = append(card, CardEntry{Movement: m, Balance: balance})
	}
	return card
}

// MergeLines fusiona líneas con el mismo SKU sumando cantidades. Conserva el orden de primera aparición
// y recorta espacios del SKU.
func MergeLines(lines []entity.OrderLine) []entity.OrderLine {
	merged := make([]entity.OrderLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		sku := strings.TrimSpace(l.SKU)
		if i, ok := index[sku]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[sku] = len(merged)
		merged = append(merged, entity.OrderLine{SKU: sku, Quantity: l.Quantity})
	}
	return merged
}
