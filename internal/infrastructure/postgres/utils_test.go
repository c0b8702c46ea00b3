package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insertar producto: %w", unique)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
}

func TestMigrationsEmbebidas(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	assert.NoError(t, err)
	assert.Contains(t, names, "migrations/001_ledger.sql")

	script, err := migrationsFS.ReadFile("migrations/001_ledger.sql")
	assert.NoError(t, err)
	for _, table := range []string{"products", "stock_movements", "orders", "order_items"} {
		assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
}
