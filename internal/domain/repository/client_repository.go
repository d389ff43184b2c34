package repository

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia de clientes.
// Las búsquedas devuelven (nil, nil) cuando el cliente no existe.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
}
