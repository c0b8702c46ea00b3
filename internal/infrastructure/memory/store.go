// Package memory implementa los puertos de persistencia en memoria. Sirve para ejecutar la API sin
// PostgreSQL (DB_DRIVER=memory) y como almacén de los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/order"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ order.OrderTxRunner = (*Store)(nil)

// Store guarda el estado completo detrás de un mutex. Run/RunOrder trabajan sobre una copia y solo la
// publican si fn no retorna error, así nada de una transacción fallida queda visible.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{data: s.data, lock: &s.mu} }

// Movements devuelve el repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{data: s.data, lock: &s.mu} }

// Orders devuelve el repositorio de pedidos fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{data: s.data, lock: &s.mu} }

// Run ejecuta fn con repos atados a una copia del estado.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return s.inTx(ctx, func(work *state) error {
		return fn(&ProductRepo{data: work, lock: noLock{}}, &StockMovementRepo{data: work, lock: noLock{}})
	})
}

// RunOrder ejecuta fn con repos de catálogo, libro y pedidos atados a una copia del estado.
func (s *Store) RunOrder(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return s.inTx(ctx, func(work *state) error {
		return fn(
			&ProductRepo{data: work, lock: noLock{}},
			&StockMovementRepo{data: work, lock: noLock{}},
			&OrderRepo{data: work, lock: noLock{}},
		)
	})
}

func (s *Store) inTx(ctx context.Context, fn func(work *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	*s.data = *work
	return nil
}

// noLock se usa dentro de una transacción: el mutex ya lo tiene inTx.
type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

type state struct {
	products   []*entity.Product
	bySKU      map[string]int
	movements  []*entity.StockMovement
	orders     []*entity.Order
	orderIndex map[int64]int
	items      []*entity.OrderItem

	nextProductID  int64
	nextMovementID int64
	nextOrderID    int64
	nextItemID     int64
}

func newState() *state {
	return &state{
		bySKU:      map[string]int{},
		orderIndex: map[int64]int{},
	}
}

// clone copia los registros (no solo los punteros) para que la transacción no altere el estado publicado.
func (st *state) clone() *state {
	c := &state{
		products:       make([]*entity.Product, len(st.products)),
		bySKU:          make(map[string]int, len(st.bySKU)),
		movements:      make([]*entity.StockMovement, len(st.movements)),
		orders:         make([]*entity.Order, len(st.orders)),
		orderIndex:     make(map[int64]int, len(st.orderIndex)),
		items:          make([]*entity.OrderItem, len(st.items)),
		nextProductID:  st.nextProductID,
		nextMovementID: st.nextMovementID,
		nextOrderID:    st.nextOrderID,
		nextItemID:     st.nextItemID,
	}
	for i, p := range st.products {
		cp := *p
		c.products[i] = &cp
	}
	for k, v := range st.bySKU {
		c.bySKU[k] = v
	}
	for i, m := range st.movements {
		cm := *m
		c.movements[i] = &cm
	}
	for i, o := range st.orders {
		co := *o
		co.Items = nil
		c.orders[i] = &co
	}
	for k, v := range st.orderIndex {
		c.orderIndex[k] = v
	}
	for i, it := range st.items {
		ci := *it
		c.items[i] = &ci
	}
	return c
}
