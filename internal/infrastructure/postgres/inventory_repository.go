package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, location, current_stock, reserved_stock, min_stock, max_stock,
	cost_price, average_cost, last_updated`

// Get obtiene el registro de un producto en un local, o (nil, nil).
func (r *InventoryRepo) Get(ctx context.Context, productID, location string) (*entity.InventoryRecord, error) {
	if !validID(productID) {
		return nil, nil
	}
	rec, err := scanRecord(r.q.QueryRow(ctx, `
		SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 AND location = $2`,
		productID, location))
	if err != nil {
		if isLookupMiss(err) {
			return nil, nil
		}
		return nil, domain.Persistence("get inventory", err)
	}
	return rec, nil
}

// GetOrCreate crea el registro en 0 si no existe y lo devuelve.
func (r *InventoryRepo) GetOrCreate(ctx context.Context, productID, location string) (*entity.InventoryRecord, error) {
	return r.ensureAndSelect(ctx, productID, location, "")
}

// GetForUpdate obtiene el registro (creándolo si hace falta) y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, location string) (*entity.InventoryRecord, error) {
	return r.ensureAndSelect(ctx, productID, location, " FOR UPDATE")
}

func (r *InventoryRepo) ensureAndSelect(ctx context.Context, productID, location, lock string) (*entity.InventoryRecord, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (id, product_id, location, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, location) DO NOTHING`,
		uuid.New().String(), productID, location, time.Now(),
	)
	if err != nil {
		return nil, domain.Persistence("ensure inventory", err)
	}
	rec, err := scanRecord(r.q.QueryRow(ctx, `
		SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 AND location = $2`+lock,
		productID, location))
	if err != nil {
		return nil, domain.Persistence("get inventory for update", err)
	}
	return rec, nil
}

// Save persiste stock y costos. La fila ya debe existir (GetForUpdate/GetOrCreate).
func (r *InventoryRepo) Save(ctx context.Context, rec *entity.InventoryRecord) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE inventory SET current_stock = $2, reserved_stock = $3, cost_price = $4,
			average_cost = $5, last_updated = $6
		WHERE id = $1`,
		rec.ID, rec.CurrentStock, rec.ReservedStock, rec.CostPrice, rec.AverageCost, rec.LastUpdated,
	)
	if err != nil {
		return domain.Persistence("save inventory", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("registro de inventario", rec.ID)
	}
	return nil
}

// SetLevels actualiza mínimo y máximo, creando el registro si no existía.
func (r *InventoryRepo) SetLevels(ctx context.Context, productID, location string, minStock decimal.Decimal, maxStock *decimal.Decimal) (*entity.InventoryRecord, error) {
	rec, err := scanRecord(r.q.QueryRow(ctx, `
		INSERT INTO inventory (id, product_id, location, min_stock, max_stock, last_updated)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, location)
		DO UPDATE SET min_stock = EXCLUDED.min_stock, max_stock = EXCLUDED.max_stock, last_updated = now()
		RETURNING `+inventoryColumns,
		uuid.New().String(), productID, location, minStock, maxStock,
	))
	if err != nil {
		return nil, domain.Persistence("set inventory levels", err)
	}
	return rec, nil
}

// ListByLocation lista registros de un local (vacío = todos).
func (r *InventoryRepo) ListByLocation(ctx context.Context, location string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory`
	args := []any{}
	pos := 1
	if location != "" {
		query += " WHERE location = $1"
		args = append(args, location)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY location, product_id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limitArg(limit), offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list inventory", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, domain.Persistence("scan inventory", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// ListBelowMinimum devuelve los registros con stock actual por debajo del mínimo.
func (r *InventoryRepo) ListBelowMinimum(ctx context.Context, location string) ([]repository.ReplenishmentItem, error) {
	query := `
		SELECT i.product_id, p.sku, p.name, i.location, i.current_stock, i.min_stock, i.max_stock, i.average_cost
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.min_stock > 0 AND i.current_stock < i.min_stock`
	args := []any{}
	if location != "" {
		query += " AND i.location = $1"
		args = append(args, location)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list below minimum", err)
	}
	defer rows.Close()
	var items []repository.ReplenishmentItem
	for rows.Next() {
		var it repository.ReplenishmentItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.Location,
			&it.CurrentStock, &it.MinStock, &it.MaxStock, &it.AverageCost); err != nil {
			return nil, domain.Persistence("scan replenishment item", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	if err := row.Scan(&rec.ID, &rec.ProductID, &rec.Location, &rec.CurrentStock, &rec.ReservedStock,
		&rec.MinStock, &rec.MaxStock, &rec.CostPrice, &rec.AverageCost, &rec.LastUpdated); err != nil {
		return nil, err
	}
	return &rec, nil
}
