package repository

import (
	"context"
	"time"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// MovementFilter filtros de consulta del libro. Los campos vacíos no filtran.
type MovementFilter struct {
	ProductID   string
	Location    string
	ReferenceID string
	Type        string
	From        *time.Time
	To          *time.Time
	Limit       int // 0 = sin límite
	Offset      int
}

// InventoryMovementRepository puerto del libro de movimientos. Solo anexa: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	GetByID(ctx context.Context, id string) (*entity.InventoryMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.InventoryMovement, error)
}
