package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria. Las líneas se copian al entrar y al salir.
type SaleRepo struct{ v *view }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.v.with(func(ds *dataset) error {
		for _, s := range ds.sales {
			if s.SaleNumber == sale.SaleNumber {
				return domain.ErrDuplicate
			}
		}
		stored := *sale
		stored.Items = withSaleID(sale.ID, sale.Items)
		ds.sales[sale.ID] = stored
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.with(func(ds *dataset) error {
		if s, ok := ds.sales[id]; ok {
			s.Items = slices.Clone(s.Items)
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) ReplaceItems(_ context.Context, saleID string, items []entity.SaleItem) error {
	return r.v.with(func(ds *dataset) error {
		s, ok := ds.sales[saleID]
		if !ok {
			return domain.NotFound("venta", saleID)
		}
		s.Items = withSaleID(saleID, items)
		ds.sales[saleID] = s
		return nil
	})
}

func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	return r.v.with(func(ds *dataset) error {
		cur, ok := ds.sales[sale.ID]
		if !ok {
			return domain.NotFound("venta", sale.ID)
		}
		updated := *sale
		updated.Items = cur.Items
		ds.sales[sale.ID] = updated
		return nil
	})
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var list []*entity.Sale
	err := r.v.with(func(ds *dataset) error {
		all := make([]entity.Sale, 0, len(ds.sales))
		for _, s := range ds.sales {
			if f.Status != "" && s.Status != f.Status {
				continue
			}
			if f.ClientID != "" && s.ClientID != f.ClientID {
				continue
			}
			s.Items = nil
			all = append(all, s)
		}
		slices.SortFunc(all, func(a, b entity.Sale) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return cmpString(b.SaleNumber, a.SaleNumber)
		})
		for _, s := range page(all, f.Limit, f.Offset) {
			list = append(list, &s)
		}
		return nil
	})
	return list, err
}

func (r *SaleRepo) NextSaleNumber(_ context.Context, prefix string) (string, error) {
	var number string
	err := r.v.with(func(ds *dataset) error {
		ds.sequences[prefix]++
		number = fmt.Sprintf("%s-%06d", prefix, ds.sequences[prefix])
		return nil
	})
	return number, err
}

func withSaleID(saleID string, items []entity.SaleItem) []entity.SaleItem {
	out := slices.Clone(items)
	for i := range out {
		out[i].SaleID = saleID
		if out[i].ID == "" {
			out[i].ID = uuid.New().String()
		}
	}
	return out
}
