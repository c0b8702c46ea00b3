package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// ProductHandler maneja las peticiones HTTP del catálogo y del stock por SKU.
type ProductHandler struct {
	catalog *inventory.CatalogUseCase
	ledger  *inventory.LedgerUseCase
	bulk    *inventory.BulkImportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(catalog *inventory.CatalogUseCase, ledger *inventory.LedgerUseCase, bulk *inventory.BulkImportUseCase) *ProductHandler {
	return &ProductHandler{catalog: catalog, ledger: ledger, bulk: bulk}
}

// Create godoc
// @Summary      Registrar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "sku, name, price"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.catalog.RegisterProduct(c.UserContext(), inventory.RegisterProductInput{
		SKU:   in.SKU,
		Name:  in.Name,
		Price: in.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(p))
}

// List godoc
// @Summary      Listar productos con stock
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.catalog.ListProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductListResponse(list))
}

// BulkRegister godoc
// @Summary      Importación masiva de productos
// @Description  Valida todas las filas antes de escribir. Los SKU existentes se omiten.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkRegisterRequest  true  "Productos con cantidad inicial"
// @Success      200   {object}  dto.BulkRegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/bulk [post]
func (h *ProductHandler) BulkRegister(c *fiber.Ctx) error {
	var in dto.BulkRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.bulk.BulkRegister(c.UserContext(), in.ToBulkEntries())
	if err != nil {
		return writeError(c, err)
	}
	skipped := res.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	return c.JSON(dto.BulkRegisterResponse{Added: res.Added, Skipped: skipped})
}

// Stock godoc
// @Summary      Stock calculado de un SKU
// @Tags         products
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.StockLevelResponse
// @Router       /api/products/{sku}/stock [get]
func (h *ProductHandler) Stock(c *fiber.Ctx) error {
	sku := c.Params("sku")
	stock, err := h.ledger.GetStockLevel(c.UserContext(), sku)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockLevelResponse{SKU: sku, Stock: stock})
}

// Movements godoc
// @Summary      Kárdex de un SKU
// @Description  Movimientos en orden de registro con saldo acumulado.
// @Tags         products
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.StockCardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	sku := c.Params("sku")
	card, err := h.ledger.GetStockCard(c.UserContext(), sku)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStockCardResponse(sku, card))
}
