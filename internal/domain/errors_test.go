package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/optica-erp/internal/domain"
)

func TestError_IsContraSentinels(t *testing.T) {
	err := domain.InsufficientStock("P1", "loja-centro", decimal.NewFromInt(2), decimal.NewFromInt(1))
	wrapped := fmt.Errorf("confirmar venta: %w", err)

	assert.True(t, errors.Is(wrapped, domain.ErrInsufficientStock))
	assert.False(t, errors.Is(wrapped, domain.ErrNotFound))
	assert.Equal(t, "P1", domain.ResourceID(wrapped))
	assert.Contains(t, err.Error(), "P1")
}

func TestPersistence_ConservaCausa(t *testing.T) {
	cause := errors.New("conexión cerrada")
	err := domain.Persistence("insert sale", cause)

	assert.True(t, errors.Is(err, domain.ErrPersistence))
	assert.True(t, errors.Is(err, cause))
	assert.Empty(t, domain.ResourceID(err))
}
