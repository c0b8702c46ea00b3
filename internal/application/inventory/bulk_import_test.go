package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	domaininv "github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func entry(sku string, qty int64) inventory.BulkEntry {
	return inventory.BulkEntry{SKU: sku, Name: "Producto " + sku, Price: decimal.NewFromInt(3), InitialQty: qty}
}

func TestBulkRegister_OmiteExistentes(t *testing.T) {
	f := newFixture()
	f.product(t, "A1", "1")
	ctx := context.Background()

	res, err := f.bulk.BulkRegister(ctx, []inventory.BulkEntry{entry("A1", 5), entry("B2", 4), entry("C3", 0)})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, []string{"A1"}, res.Skipped)

	assert.EqualValues(t, 0, f.stock(t, "A1"))
	assert.EqualValues(t, 4, f.stock(t, "B2"))
	assert.EqualValues(t, 0, f.stock(t, "C3"))

	list, err := f.catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	card, err := f.ledger.GetStockCard(ctx, "B2")
	require.NoError(t, err)
	require.Len(t, card, 1)
	assert.Equal(t, domaininv.InitialStockReason, card[0].Movement.Reason)
}

func TestBulkRegister_SKURepetidoEnElLote(t *testing.T) {
	f := newFixture()

	res, err := f.bulk.BulkRegister(context.Background(), []inventory.BulkEntry{entry("A1", 2), entry("A1", 9)})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, []string{"A1"}, res.Skipped)
	assert.EqualValues(t, 2, f.stock(t, "A1"))
}

func TestBulkRegister_ValidacionNoEscribeNada(t *testing.T) {
	f := newFixture()
	bad := entry("B2", 1)
	bad.Price = decimal.NewFromInt(-5)

	_, err := f.bulk.BulkRegister(context.Background(), []inventory.BulkEntry{entry("A1", 3), bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.bulk.BulkRegister(context.Background(), []inventory.BulkEntry{entry("C3", -1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.catalog.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
