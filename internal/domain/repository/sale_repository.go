package repository

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	Status   string
	ClientID string
	Limit    int
	Offset   int
}

// SaleRepository define el puerto de persistencia del agregado Venta (cabecera + líneas).
type SaleRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate igual que GetByID bloqueando la cabecera hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// ReplaceItems borra las líneas actuales e inserta las nuevas.
	ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem) error
	// Update persiste los campos de cabecera (estado, pagos, totales, fechas).
	Update(ctx context.Context, sale *entity.Sale) error
	// List devuelve cabeceras sin líneas.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	// NextSaleNumber reserva el siguiente número para el prefijo (VD-000001, TSO-000001...).
	NextSaleNumber(ctx context.Context, prefix string) (string, error)
}
