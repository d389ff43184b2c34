package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo abonos sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, sale_id, amount, method, user_id, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.SaleID, p.Amount, p.Method, nullIfEmpty(p.UserID), p.PaidAt,
	)
	if err != nil {
		return domain.Persistence("insert payment", err)
	}
	return nil
}

func (r *PaymentRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.Payment, error) {
	if !validID(saleID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, amount, method, user_id, paid_at
		FROM payments WHERE sale_id = $1 ORDER BY paid_at`, saleID)
	if err != nil {
		return nil, domain.Persistence("list payments", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var userID *string
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Amount, &p.Method, &userID, &p.PaidAt); err != nil {
			return nil, domain.Persistence("scan payment", err)
		}
		p.UserID = deref(userID)
		list = append(list, &p)
	}
	return list, rows.Err()
}
