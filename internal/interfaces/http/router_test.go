package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/order"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp() *fiber.App {
	store := memory.NewStore()
	log := zerolog.Nop()

	ledger := inventory.NewLedgerUseCase(store, store.Products(), store.Movements())
	orders := order.NewCreateOrderUseCase(store, ledger, store.Orders(), nil, log)

	app := fiber.New()
	app.Use(apphttp.RequestID())
	app.Use(apphttp.AccessLog(log))
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog:     inventory.NewCatalogUseCase(store, store.Products()),
		Ledger:      ledger,
		BulkImport:  inventory.NewBulkImportUseCase(store, ledger),
		Orders:      orders,
		OrderStatus: order.NewStatusUseCase(store, ledger, nil, log),
		PackingSlip: order.NewPackingSlipUseCase(orders, store.Products(), pdf.NewMarotoPackingSlipGenerator()),
	})
	return app
}

// doJSON envía body como JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seedProduct(t *testing.T, app *fiber.App, sku string, qty int64) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": sku, "name": "Producto " + sku, "price": 10.5})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	if qty > 0 {
		resp = doJSON(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
			"sku": sku, "type": "IN", "quantity": qty, "reason": "compra",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_CreateYDuplicado(t *testing.T) {
	app := buildTestApp()
	seedProduct(t, app, "A-1", 0)

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": "A-1", "name": "Otro", "price": 1})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_SKU", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"sku": "", "name": "x", "price": 1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProducts_ListConStock(t *testing.T) {
	app := buildTestApp()
	seedProduct(t, app, "A-1", 7)
	seedProduct(t, app, "B-2", 0)

	resp := doJSON(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.ProductListResponse](t, resp)

	require.Equal(t, 2, list.Total)
	assert.Equal(t, "A-1", list.Items[0].SKU)
	assert.EqualValues(t, 7, list.Items[0].Stock)
	assert.EqualValues(t, 0, list.Items[1].Stock)
}

func TestMovements_Errores(t *testing.T) {
	app := buildTestApp()
	seedProduct(t, app, "A-1", 2)

	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"sku desconocido", map[string]any{"sku": "ZZ", "type": "IN", "quantity": 1}, fiber.StatusNotFound, "UNKNOWN_SKU"},
		{"cantidad cero", map[string]any{"sku": "A-1", "type": "IN", "quantity": 0}, fiber.StatusBadRequest, "INVALID_QUANTITY"},
		{"tipo inválido", map[string]any{"sku": "A-1", "type": "MOVE", "quantity": 1}, fiber.StatusBadRequest, "INVALID_MOVEMENT_TYPE"},
		{"stock insuficiente", map[string]any{"sku": "A-1", "type": "OUT", "quantity": 3}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestMovements_StockInsuficienteConDetalle(t *testing.T) {
	app := buildTestApp()
	seedProduct(t, app, "A-1", 2)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{"sku": "A-1", "type": "out", "quantity": 5})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "A-1", body.Details["sku"])
	assert.EqualValues(t, 2, body.Details["current"])
	assert.EqualValues(t, 5, body.Details["requested"])

	resp = doJSON(t, app, http.MethodGet, "/api/products/A-1/stock", nil)
	assert.EqualValues(t, 2, decode[dto.StockLevelResponse](t, resp).Stock)
}

func TestProducts_StockCard(t *testing.T) {
	app := buildTestApp()
	seedProduct(t, app, "A-1", 10)
	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{"sku": "A-1", "type": "OUT", "quantity": 4})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products/A-1/movements", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	card := decode[dto.StockCardResponse](t, resp)
	require.Len(t, card.Movements, 2)
	assert.EqualValues(t, 10, card.Movements[0].Balance)
	assert.EqualValues(t, 6, card.Movements[1].Balance)
	assert.EqualValues(t, 6, card.Stock)

	resp = doJSON(t, app, http.MethodGet, "/api/products/NOPE/movements", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProducts_Bulk(t *testing.T) {
	app := buildTestApp()
	seedProduct(t, app, "A-1", 0)

	resp := doJSON(t, app, http.MethodPost, "/api/products/bulk", map[string]any{
		"products": []map[string]any{
			{"sku": "A-1", "name": "Repetido", "price": 1, "initial_qty": 3},
			{"sku": "B-2", "name": "Nuevo", "price": 2, "initial_qty": 4},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.BulkRegisterResponse](t, resp)
	assert.Equal(t, 1, out.Added)
	assert.Equal(t, []string{"A-1"}, out.Skipped)

	resp = doJSON(t, app, http.MethodGet, "/api/products/B-2/stock", nil)
	assert.EqualValues(t, 4, decode[dto.StockLevelResponse](t, resp).Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_FlujoCompleto(t *testing.T) {
	app := buildTestApp()
	seedProduct(t, app, "A-1", 10)

	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Ana",
		"items":         []map[string]any{{"sku": "A-1", "quantity": 2}, {"sku": "A-1", "quantity": 3}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateOrderResponse](t, resp)
	require.NotZero(t, created.ID)

	path := "/api/orders/" + itoa(created.ID)
	resp = doJSON(t, app, http.MethodGet, path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	o := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, "CREATED", o.Status)
	require.Len(t, o.Items, 1)
	assert.EqualValues(t, 5, o.Items[0].Quantity)

	resp = doJSON(t, app, http.MethodGet, "/api/products/A-1/stock", nil)
	assert.EqualValues(t, 5, decode[dto.StockLevelResponse](t, resp).Stock)

	resp = doJSON(t, app, http.MethodPatch, path+"/status", map[string]any{"status": "cancelled"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "CANCELLED", decode[dto.OrderResponse](t, resp).Status)

	resp = doJSON(t, app, http.MethodGet, "/api/products/A-1/stock", nil)
	assert.EqualValues(t, 10, decode[dto.StockLevelResponse](t, resp).Stock)

	resp = doJSON(t, app, http.MethodPatch, path+"/status", map[string]any{"status": "PACKED"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "ILLEGAL_TRANSITION", body.Code)
	assert.Equal(t, "CANCELLED", body.Details["from"])
	assert.Equal(t, "PACKED", body.Details["to"])
}

func TestOrders_Errores(t *testing.T) {
	app := buildTestApp()
	seedProduct(t, app, "A-1", 1)

	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{"customer_name": "Ana", "items": []any{}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "EMPTY_ORDER", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Ana",
		"items":         []map[string]any{{"sku": "A-1", "quantity": 2}},
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodGet, "/api/orders/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ORDER_NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPatch, "/api/orders/999/status", map[string]any{"status": "SHIPPED"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_STATUS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestOrders_PackingSlip(t *testing.T) {
	app := buildTestApp()
	seedProduct(t, app, "A-1", 3)

	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name": "Ana",
		"items":         []map[string]any{{"sku": "A-1", "quantity": 1}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := decode[dto.CreateOrderResponse](t, resp).ID

	resp = doJSON(t, app, http.MethodGet, "/api/orders/"+itoa(id)+"/packing-slip", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "pedido-"+itoa(id)+".pdf")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRequestID_Header(t *testing.T) {
	app := buildTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/products", nil)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
