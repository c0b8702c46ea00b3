package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/order"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// OrderHandler maneja pedidos: creación, consulta, cambio de estado y lista de empaque.
type OrderHandler struct {
	orders *order.CreateOrderUseCase
	status *order.StatusUseCase
	slip   *order.PackingSlipUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *order.CreateOrderUseCase, status *order.StatusUseCase, slip *order.PackingSlipUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, status: status, slip: slip}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Todo o nada: si alguna línea no tiene stock no se guarda nada.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "customer_name, items"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.orders.CreateOrder(c.UserContext(), order.CreateOrderInput{
		CustomerName: in.CustomerName,
		Lines:        in.Lines(),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateOrderResponse{ID: id})
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return writeError(c, err)
	}
	o, err := h.orders.GetOrder(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(o))
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  CREATED→PACKED→DISPATCHED; CANCELLED desde CREATED o PACKED devuelve el stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	o, err := h.status.UpdateOrderStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(o))
}

// PackingSlip godoc
// @Summary      Lista de empaque en PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/packing-slip [get]
func (h *OrderHandler) PackingSlip(c *fiber.Ctx) error {
	id, err := orderID(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.slip.PackingSlip(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}

// orderID lee :id; un id no numérico no puede existir y se trata como pedido inexistente.
func orderID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, domain.ErrOrderNotFound
	}
	return int64(id), nil
}
