package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo registros de inventario en memoria. El lock de fila lo da el lock global de la tx.
type InventoryRepo struct{ v *view }

func recordKey(productID, location string) string { return productID + "|" + location }

func (r *InventoryRepo) Get(_ context.Context, productID, location string) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := r.v.with(func(ds *dataset) error {
		if rec, ok := ds.inventory[recordKey(productID, location)]; ok {
			out = &rec
		}
		return nil
	})
	return out, err
}

func (r *InventoryRepo) GetOrCreate(_ context.Context, productID, location string) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := r.v.with(func(ds *dataset) error {
		rec := getOrCreate(ds, productID, location)
		out = &rec
		return nil
	})
	return out, err
}

func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, location string) (*entity.InventoryRecord, error) {
	return r.GetOrCreate(ctx, productID, location)
}

func getOrCreate(ds *dataset, productID, location string) entity.InventoryRecord {
	key := recordKey(productID, location)
	if rec, ok := ds.inventory[key]; ok {
		return rec
	}
	rec := entity.InventoryRecord{
		ID:          uuid.New().String(),
		ProductID:   productID,
		Location:    location,
		LastUpdated: time.Now(),
	}
	ds.inventory[key] = rec
	return rec
}

func (r *InventoryRepo) Save(_ context.Context, record *entity.InventoryRecord) error {
	return r.v.with(func(ds *dataset) error {
		key := recordKey(record.ProductID, record.Location)
		if _, ok := ds.inventory[key]; !ok {
			return domain.NotFound("registro de inventario", record.ProductID)
		}
		ds.inventory[key] = *record
		return nil
	})
}

func (r *InventoryRepo) SetLevels(_ context.Context, productID, location string, minStock decimal.Decimal, maxStock *decimal.Decimal) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := r.v.with(func(ds *dataset) error {
		rec := getOrCreate(ds, productID, location)
		rec.MinStock = minStock
		if maxStock != nil {
			m := *maxStock
			rec.MaxStock = &m
		} else {
			rec.MaxStock = nil
		}
		rec.LastUpdated = time.Now()
		ds.inventory[recordKey(productID, location)] = rec
		out = &rec
		return nil
	})
	return out, err
}

func (r *InventoryRepo) ListByLocation(_ context.Context, location string, limit, offset int) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	err := r.v.with(func(ds *dataset) error {
		all := make([]entity.InventoryRecord, 0)
		for _, rec := range ds.inventory {
			if location == "" || rec.Location == location {
				all = append(all, rec)
			}
		}
		slices.SortFunc(all, func(a, b entity.InventoryRecord) int {
			if a.Location == b.Location {
				return cmpString(a.ProductID, b.ProductID)
			}
			return cmpString(a.Location, b.Location)
		})
		for _, rec := range page(all, limit, offset) {
			list = append(list, &rec)
		}
		return nil
	})
	return list, err
}

func (r *InventoryRepo) ListBelowMinimum(_ context.Context, location string) ([]repository.ReplenishmentItem, error) {
	var items []repository.ReplenishmentItem
	err := r.v.with(func(ds *dataset) error {
		for _, rec := range ds.inventory {
			if location != "" && rec.Location != location {
				continue
			}
			if !rec.BelowMinimum() {
				continue
			}
			p := ds.products[rec.ProductID]
			items = append(items, repository.ReplenishmentItem{
				ProductID:    rec.ProductID,
				SKU:          p.SKU,
				ProductName:  p.Name,
				Location:     rec.Location,
				CurrentStock: rec.CurrentStock,
				MinStock:     rec.MinStock,
				MaxStock:     rec.MaxStock,
				AverageCost:  rec.AverageCost,
			})
		}
		return nil
	})
	return items, err
}
