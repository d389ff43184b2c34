package repository

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// PaymentRepository puerto de los abonos de una venta.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListBySale(ctx context.Context, saleID string) ([]*entity.Payment, error)
}
