package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo abonos en memoria.
type PaymentRepo struct{ v *view }

func (r *PaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	return r.v.with(func(ds *dataset) error {
		ds.payments = append(ds.payments, *payment)
		return nil
	})
}

func (r *PaymentRepo) ListBySale(_ context.Context, saleID string) ([]*entity.Payment, error) {
	var list []*entity.Payment
	err := r.v.with(func(ds *dataset) error {
		for _, p := range ds.payments {
			if p.SaleID == saleID {
				list = append(list, &p)
			}
		}
		return nil
	})
	return list, err
}
