package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria (solo anexa).
type MovementRepo struct{ v *view }

func (r *MovementRepo) Create(_ context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	return r.v.with(func(ds *dataset) error {
		ds.movements = append(ds.movements, *movement)
		return nil
	})
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.InventoryMovement, error) {
	var out *entity.InventoryMovement
	err := r.v.with(func(ds *dataset) error {
		for _, m := range ds.movements {
			if m.ID == id {
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	err := r.v.with(func(ds *dataset) error {
		all := make([]entity.InventoryMovement, 0)
		for _, m := range ds.movements {
			if matchMovement(m, f) {
				all = append(all, m)
			}
		}
		slices.SortStableFunc(all, func(a, b entity.InventoryMovement) int {
			return a.MovementDate.Compare(b.MovementDate)
		})
		for _, m := range page(all, f.Limit, f.Offset) {
			list = append(list, &m)
		}
		return nil
	})
	return list, err
}

func matchMovement(m entity.InventoryMovement, f repository.MovementFilter) bool {
	switch {
	case f.ProductID != "" && m.ProductID != f.ProductID:
		return false
	case f.Location != "" && m.Location != f.Location:
		return false
	case f.ReferenceID != "" && m.ReferenceID != f.ReferenceID:
		return false
	case f.Type != "" && m.Type != f.Type:
		return false
	case f.From != nil && m.MovementDate.Before(*f.From):
		return false
	case f.To != nil && m.MovementDate.After(*f.To):
		return false
	}
	return true
}
