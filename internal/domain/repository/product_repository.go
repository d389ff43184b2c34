package repository

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// ProductFilter filtros del listado de catálogo.
type ProductFilter struct {
	Category string
	Active   *bool
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia del catálogo (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
