package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria.
type ClientRepo struct{ v *view }

func (r *ClientRepo) Create(_ context.Context, client *entity.Client) error {
	return r.v.with(func(ds *dataset) error {
		for _, c := range ds.clients {
			if client.TaxID != "" && c.TaxID == client.TaxID {
				return domain.ErrDuplicate
			}
		}
		ds.clients[client.ID] = *client
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.v.with(func(ds *dataset) error {
		if c, ok := ds.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Client, error) {
	var out *entity.Client
	err := r.v.with(func(ds *dataset) error {
		for _, c := range ds.clients {
			if c.TaxID == taxID {
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	var list []*entity.Client
	err := r.v.with(func(ds *dataset) error {
		all := make([]entity.Client, 0, len(ds.clients))
		for _, c := range ds.clients {
			all = append(all, c)
		}
		slices.SortFunc(all, func(a, b entity.Client) int {
			if a.Name == b.Name {
				return cmpString(a.ID, b.ID)
			}
			return cmpString(a.Name, b.Name)
		})
		for _, c := range page(all, limit, offset) {
			list = append(list, &c)
		}
		return nil
	})
	return list, err
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
