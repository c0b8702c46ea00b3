package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// errorMapping status HTTP y código estable por tipo de error de dominio.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrDuplicateSKU, fiber.StatusConflict, "DUPLICATE_SKU"},
	{domain.ErrUnknownSKU, fiber.StatusNotFound, "UNKNOWN_SKU"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrInvalidMovementType, fiber.StatusBadRequest, "INVALID_MOVEMENT_TYPE"},
	{domain.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmptyOrder, fiber.StatusBadRequest, "EMPTY_ORDER"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrOrderNotFound, fiber.StatusNotFound, "ORDER_NOT_FOUND"},
	{domain.ErrIllegalTransition, fiber.StatusConflict, "ILLEGAL_TRANSITION"},
}

// writeError traduce un error de caso de uso a la respuesta JSON.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if !errors.Is(err, m.target) {
			continue
		}
		resp := dto.ErrorResponse{Code: m.code, Message: err.Error()}

		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			resp.Details = map[string]any{
				"sku":       stockErr.SKU,
				"current":   stockErr.Current,
				"requested": stockErr.Requested,
			}
		}
		var transErr *domain.IllegalTransitionError
		if errors.As(err, &transErr) {
			resp.Details = map[string]any{"from": transErr.From, "to": transErr.To}
		}
		return c.Status(m.status).JSON(resp)
	}
	requestLogger(c).Error().Err(err).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
