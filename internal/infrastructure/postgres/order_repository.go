package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos e ítems sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera; la BD asigna el id.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (customer_name, status, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, o.CustomerName, string(o.Status), o.CreatedAt).Scan(&o.ID); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea del pedido.
func (r *OrderRepo) CreateItem(ctx context.Context, item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, sku, quantity, price_at_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, item.OrderID, item.SKU, item.Quantity, item.PriceAtOrder).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera del pedido (sin ítems).
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, `SELECT id, customer_name, status, created_at FROM orders WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la cabecera y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, `SELECT id, customer_name, status, created_at FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query string, id int64) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.CustomerName, &status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

// GetItemsByOrderID lista las líneas del pedido en orden de registro.
func (r *OrderRepo) GetItemsByOrderID(ctx context.Context, orderID int64) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, sku, quantity, price_at_order
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.SKU, &it.Quantity, &it.PriceAtOrder); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateStatus cambia solo el estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update order status: pedido %d sin filas afectadas", id)
	}
	return nil
}
