package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria.
type ProductRepo struct{ v *view }

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.v.with(func(ds *dataset) error {
		for _, p := range ds.products {
			if p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		ds.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(ds *dataset) error {
		if p, ok := ds.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(ds *dataset) error {
		for _, p := range ds.products {
			if p.SKU == sku {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.v.with(func(ds *dataset) error {
		if _, ok := ds.products[product.ID]; !ok {
			return domain.NotFound("producto", product.ID)
		}
		for _, p := range ds.products {
			if p.ID != product.ID && p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		ds.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.v.with(func(ds *dataset) error {
		all := make([]entity.Product, 0, len(ds.products))
		for _, p := range ds.products {
			if f.Category != "" && p.Category != f.Category {
				continue
			}
			if f.Active != nil && p.Active != *f.Active {
				continue
			}
			all = append(all, p)
		}
		slices.SortFunc(all, func(a, b entity.Product) int { return cmpString(a.SKU, b.SKU) })
		for _, p := range page(all, f.Limit, f.Offset) {
			list = append(list, &p)
		}
		return nil
	})
	return list, err
}
