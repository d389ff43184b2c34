package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// ReplenishmentItem resultado crudo para un registro bajo su stock mínimo.
type ReplenishmentItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	Location     string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     *decimal.Decimal
	AverageCost  decimal.Decimal
}

// InventoryRepository define el puerto para los registros de inventario por producto+local.
// Usado dentro de transacciones para garantizar consistencia entre stock y libro de movimientos.
type InventoryRepository interface {
	// Get devuelve (nil, nil) si el registro no existe.
	Get(ctx context.Context, productID, location string) (*entity.InventoryRecord, error)
	// GetOrCreate crea el registro con stock 0 si no existe.
	GetOrCreate(ctx context.Context, productID, location string) (*entity.InventoryRecord, error)
	// GetForUpdate igual que GetOrCreate pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID, location string) (*entity.InventoryRecord, error)
	// Save persiste stock, costos y lastUpdated de un registro existente.
	Save(ctx context.Context, record *entity.InventoryRecord) error
	SetLevels(ctx context.Context, productID, location string, minStock decimal.Decimal, maxStock *decimal.Decimal) (*entity.InventoryRecord, error)
	ListByLocation(ctx context.Context, location string, limit, offset int) ([]*entity.InventoryRecord, error)
	ListBelowMinimum(ctx context.Context, location string) ([]ReplenishmentItem, error)
}
