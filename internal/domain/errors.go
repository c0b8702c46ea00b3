package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicateSKU        = errors.New("el SKU ya está registrado")
	ErrUnknownSKU          = errors.New("SKU desconocido")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser mayor que 0")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido, use IN u OUT")
	ErrInvalidStatus       = errors.New("estado inválido, use CREATED, PACKED, DISPATCHED o CANCELLED")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrEmptyOrder          = errors.New("el pedido debe tener al menos un ítem")
	ErrOrderNotFound       = errors.New("pedido no encontrado")
	ErrIllegalTransition   = errors.New("cambio de estado no permitido")
)

// InsufficientStockError detalla una salida que dejaría el stock en negativo.
// errors.Is(err, ErrInsufficientStock) es verdadero para este tipo.
type InsufficientStockError struct {
	SKU       string
	Current   int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: actual %d, solicitado %d", e.SKU, e.Current, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IllegalTransitionError indica el estado actual y el solicitado de un cambio rechazado.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("no se puede cambiar el estado de %s a %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error { return ErrIllegalTransition }
