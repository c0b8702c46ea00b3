package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("  packed ")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPacked, st)

	_, err = ParseOrderStatus("SHIPPED")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = ParseOrderStatus("")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	all := []OrderStatus{OrderStatusCreated, OrderStatusPacked, OrderStatusDispatched, OrderStatusCancelled}
	allowed := map[[2]OrderStatus]bool{
		{OrderStatusCreated, OrderStatusPacked}:    true,
		{OrderStatusCreated, OrderStatusCancelled}: true,
		{OrderStatusPacked, OrderStatusDispatched}: true,
		{OrderStatusPacked, OrderStatusCancelled}:  true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]OrderStatus{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, OrderStatusDispatched.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusCreated.IsTerminal())
	assert.ElementsMatch(t, []OrderStatus{OrderStatusDispatched, OrderStatusCancelled}, OrderStatusPacked.AllowedTargets())
}

func TestOrder_Total(t *testing.T) {
	o := &Order{Items: []*OrderItem{
		{SKU: "A", Quantity: 3, PriceAtOrder: decimal.RequireFromString("9.99")},
		{SKU: "B", Quantity: 1, PriceAtOrder: decimal.RequireFromString("0.03")},
	}}
	assert.True(t, decimal.RequireFromString("30.00").Equal(o.Total()), o.Total().String())
	assert.True(t, (&Order{}).Total().IsZero())
}
