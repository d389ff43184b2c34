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

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, transaction_id, product_id, inventory_id, location, movement_type, quantity,
	previous_stock, new_stock, unit_cost, total_cost, reason, reference, reference_id, user_id,
	movement_date, created_at`

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.ID, m.TransactionID, m.ProductID, m.InventoryID, m.Location, m.Type, m.Quantity,
		m.PreviousStock, m.NewStock, m.UnitCost, m.TotalCost, nullIfEmpty(m.Reason), nullIfEmpty(m.Reference),
		nullIfEmpty(m.ReferenceID), nullIfEmpty(m.UserID), m.MovementDate, m.CreatedAt,
	)
	if err != nil {
		return domain.Persistence("create inventory movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryMovementRepo) GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error) {
	if !validID(id) {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE id = $1`, id))
	if err != nil {
		if isLookupMiss(err) {
			return nil, nil
		}
		return nil, domain.Persistence("get movement", err)
	}
	return m, nil
}

// List consulta el libro con filtros opcionales, en orden cronológico.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	if f.ProductID != "" && !validID(f.ProductID) {
		return nil, nil
	}
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE 1=1`
	args := []any{}
	pos := 1
	add := func(cond string, v any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, v)
		pos++
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.Location != "" {
		add("location = $%d", f.Location)
	}
	if f.ReferenceID != "" {
		add("reference_id = $%d", f.ReferenceID)
	}
	if f.Type != "" {
		add("movement_type = $%d", f.Type)
	}
	if f.From != nil {
		add("movement_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("movement_date <= $%d", *f.To)
	}
	query += fmt.Sprintf(" ORDER BY movement_date, created_at LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limitArg(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list movements", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, domain.Persistence("scan movement", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var reason, reference, referenceID, userID *string
	if err := row.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.InventoryID, &m.Location, &m.Type,
		&m.Quantity, &m.PreviousStock, &m.NewStock, &m.UnitCost, &m.TotalCost, &reason, &reference,
		&referenceID, &userID, &m.MovementDate, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Reason, m.Reference, m.ReferenceID, m.UserID = deref(reason), deref(reference), deref(referenceID), deref(userID)
	return &m, nil
}
