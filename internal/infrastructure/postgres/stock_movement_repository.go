package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create agrega un movimiento; la BD asigna id y created_at.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (sku, movement_type, quantity, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, m.SKU, string(m.Type), m.Quantity, m.Reason).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// StockLevel calcula Σ IN − Σ OUT del SKU.
func (r *StockMovementRepo) StockLevel(ctx context.Context, sku string) (int64, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN movement_type = 'IN' THEN quantity ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN movement_type = 'OUT' THEN quantity ELSE 0 END), 0)
		FROM stock_movements
		WHERE sku = $1`
	var level int64
	if err := r.q.QueryRow(ctx, query, sku).Scan(&level); err != nil {
		return 0, fmt.Errorf("stock level: %w", err)
	}
	return level, nil
}

// ListBySKU lista los movimientos del SKU en orden de registro.
func (r *StockMovementRepo) ListBySKU(ctx context.Context, sku string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, sku, movement_type, quantity, reason, created_at
		FROM stock_movements WHERE sku = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, sku)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var movType string
		if err := rows.Scan(&m.ID, &m.SKU, &movType, &m.Quantity, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(movType)
		list = append(list, &m)
	}
	return list, rows.Err()
}
