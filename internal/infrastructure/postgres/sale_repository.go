package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Create y ReplaceItems ejecutan varias sentencias: llamarlos dentro de TxRunner.Run.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_number, kind, client_id, user_id, prescription_id, location, status,
	payment_status, subtotal, discount, tax, total, paid_amount, payment_method, notes,
	confirmed_at, cancelled_at, created_at, updated_at`

// Create inserta cabecera y líneas.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		s.ID, s.SaleNumber, s.Kind, s.ClientID, s.UserID, nullIfEmpty(s.PrescriptionID), s.Location, s.Status,
		s.PaymentStatus, s.Subtotal, s.Discount, s.Tax, s.Total, s.PaidAmount, nullIfEmpty(s.PaymentMethod),
		nullIfEmpty(s.Notes), s.ConfirmedAt, s.CancelledAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return domain.Persistence("insert sale", err)
	}
	return r.insertItems(ctx, s.ID, s.Items)
}

func (r *SaleRepo) insertItems(ctx context.Context, saleID string, items []entity.SaleItem) error {
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.SaleID = saleID
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount_amount, subtotal, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, saleID, it.ProductID, it.Quantity, it.UnitPrice, it.DiscountAmount, it.Subtotal, i,
		)
		if err != nil {
			return domain.Persistence("insert sale item", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene la venta bloqueando la cabecera (SELECT FOR UPDATE).
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *SaleRepo) get(ctx context.Context, id, lock string) (*entity.Sale, error) {
	// Una clave que no es UUID abortaría la tx en curso con 22P02.
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`+lock, id))
	if err != nil {
		if isLookupMiss(err) {
			return nil, nil
		}
		return nil, domain.Persistence("get sale", err)
	}
	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return s, nil
}

func (r *SaleRepo) listItems(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, discount_amount, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY position`, saleID)
	if err != nil {
		return nil, domain.Persistence("list sale items", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.DiscountAmount, &it.Subtotal); err != nil {
			return nil, domain.Persistence("scan sale item", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ReplaceItems borra e inserta las líneas (reemplazo completo, no incremental).
func (r *SaleRepo) ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID); err != nil {
		return domain.Persistence("delete sale items", err)
	}
	return r.insertItems(ctx, saleID, items)
}

// Update persiste los campos mutables de la cabecera.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales SET status = $2, payment_status = $3, subtotal = $4, discount = $5, tax = $6,
			total = $7, paid_amount = $8, payment_method = $9, notes = $10, confirmed_at = $11,
			cancelled_at = $12, updated_at = $13
		WHERE id = $1`,
		s.ID, s.Status, s.PaymentStatus, s.Subtotal, s.Discount, s.Tax, s.Total, s.PaidAmount,
		nullIfEmpty(s.PaymentMethod), nullIfEmpty(s.Notes), s.ConfirmedAt, s.CancelledAt, s.UpdatedAt,
	)
	if err != nil {
		return domain.Persistence("update sale", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("venta", s.ID)
	}
	return nil
}

// List lista cabeceras (sin líneas), más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	if f.ClientID != "" && !validID(f.ClientID) {
		return nil, nil
	}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}
	if f.ClientID != "" {
		query += fmt.Sprintf(" AND client_id = $%d", pos)
		args = append(args, f.ClientID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, sale_number DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limitArg(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list sales", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, domain.Persistence("scan sale", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// NextSaleNumber incrementa la secuencia del prefijo de forma atómica (UPSERT ... RETURNING).
func (r *SaleRepo) NextSaleNumber(ctx context.Context, prefix string) (string, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO sale_number_sequences (prefix, last_value) VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last_value = sale_number_sequences.last_value + 1
		RETURNING last_value`, prefix).Scan(&n)
	if err != nil {
		return "", domain.Persistence("next sale number", err)
	}
	return fmt.Sprintf("%s-%06d", prefix, n), nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var prescriptionID, paymentMethod, notes *string
	if err := row.Scan(&s.ID, &s.SaleNumber, &s.Kind, &s.ClientID, &s.UserID, &prescriptionID, &s.Location,
		&s.Status, &s.PaymentStatus, &s.Subtotal, &s.Discount, &s.Tax, &s.Total, &s.PaidAmount,
		&paymentMethod, &notes, &s.ConfirmedAt, &s.CancelledAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.PrescriptionID, s.PaymentMethod, s.Notes = deref(prescriptionID), deref(paymentMethod), deref(notes)
	return &s, nil
}
