package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
)

// Los repositorios devuelven copias para que el caller no pueda modificar el estado guardado.

// ProductRepo productos en memoria.
type ProductRepo struct {
	data *state
	lock sync.Locker
}

// Create inserta el producto; SKU repetido -> domain.ErrDuplicateSKU.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.data.bySKU[p.SKU]; ok {
		return domain.ErrDuplicateSKU
	}
	r.data.nextProductID++
	p.ID = r.data.nextProductID
	p.CreatedAt = time.Now().UTC()
	stored := *p
	r.data.bySKU[p.SKU] = len(r.data.products)
	r.data.products = append(r.data.products, &stored)
	return nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	i, ok := r.data.bySKU[sku]
	if !ok {
		return nil, nil
	}
	p := *r.data.products[i]
	return &p, nil
}

// GetBySKUForUpdate igual que GetBySKU; el aislamiento lo da el mutex del Store.
func (r *ProductRepo) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.Product, error) {
	return r.GetBySKU(ctx, sku)
}

// List devuelve los productos en orden de inserción.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	list := make([]*entity.Product, 0, len(r.data.products))
	for _, p := range r.data.products {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

// StockMovementRepo libro de movimientos en memoria.
type StockMovementRepo struct {
	data *state
	lock sync.Locker
}

// Create agrega un movimiento. Exige que el SKU exista, como la FK de la BD.
func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.data.bySKU[m.SKU]; !ok {
		return fmt.Errorf("create stock movement: sku %q sin producto", m.SKU)
	}
	r.data.nextMovementID++
	m.ID = r.data.nextMovementID
	m.CreatedAt = time.Now().UTC()
	stored := *m
	r.data.movements = append(r.data.movements, &stored)
	return nil
}

// StockLevel suma los movimientos del SKU.
func (r *StockMovementRepo) StockLevel(ctx context.Context, sku string) (int64, error) {
	list, err := r.ListBySKU(ctx, sku)
	if err != nil {
		return 0, err
	}
	return inventory.StockLevel(list), nil
}

// ListBySKU devuelve los movimientos del SKU en orden de registro.
func (r *StockMovementRepo) ListBySKU(_ context.Context, sku string) ([]*entity.StockMovement, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	var list []*entity.StockMovement
	for _, m := range r.data.movements {
		if m.SKU == sku {
			cm := *m
			list = append(list, &cm)
		}
	}
	return list, nil
}

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	data *state
	lock sync.Locker
}

// Create inserta la cabecera y asigna el id.
func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.data.nextOrderID++
	o.ID = r.data.nextOrderID
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	stored := *o
	stored.Items = nil
	r.data.orderIndex[o.ID] = len(r.data.orders)
	r.data.orders = append(r.data.orders, &stored)
	return nil
}

// CreateItem inserta una línea; el pedido debe existir y no puede repetir SKU.
func (r *OrderRepo) CreateItem(_ context.Context, item *entity.OrderItem) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.data.orderIndex[item.OrderID]; !ok {
		return fmt.Errorf("insert order item: pedido %d no existe", item.OrderID)
	}
	for _, it := range r.data.items {
		if it.OrderID == item.OrderID && it.SKU == item.SKU {
			return fmt.Errorf("insert order item: SKU %s repetido en pedido %d", item.SKU, item.OrderID)
		}
	}
	r.data.nextItemID++
	item.ID = r.data.nextItemID
	stored := *item
	r.data.items = append(r.data.items, &stored)
	return nil
}

// GetByID obtiene la cabecera del pedido.
func (r *OrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	i, ok := r.data.orderIndex[id]
	if !ok {
		return nil, nil
	}
	o := *r.data.orders[i]
	return &o, nil
}

// GetByIDForUpdate igual que GetByID.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

// GetItemsByOrderID lista las líneas del pedido en orden de registro.
func (r *OrderRepo) GetItemsByOrderID(_ context.Context, orderID int64) ([]*entity.OrderItem, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	var list []*entity.OrderItem
	for _, it := range r.data.items {
		if it.OrderID == orderID {
			ci := *it
			list = append(list, &ci)
		}
	}
	return list, nil
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(_ context.Context, id int64, status entity.OrderStatus) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	i, ok := r.data.orderIndex[id]
	if !ok {
		return fmt.Errorf("update order status: pedido %d no existe", id)
	}
	r.data.orders[i].Status = status
	return nil
}
