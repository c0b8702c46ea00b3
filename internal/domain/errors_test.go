package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsufficientStockError(t *testing.T) {
	err := fmt.Errorf("crear pedido: %w", &InsufficientStockError{SKU: "A-1", Current: 2, Requested: 5})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	var detail *InsufficientStockError
	require.True(t, errors.As(err, &detail))
	assert.EqualValues(t, 2, detail.Current)
	assert.EqualValues(t, 5, detail.Requested)
	assert.Contains(t, err.Error(), "A-1")
}

func TestIllegalTransitionError(t *testing.T) {
	err := error(&IllegalTransitionError{From: "DISPATCHED", To: "PACKED"})

	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.NotErrorIs(t, err, ErrInvalidStatus)
	assert.Contains(t, err.Error(), "DISPATCHED")
}
