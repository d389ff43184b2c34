package inventory

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error
}

// MovementExporter serializa el libro de movimientos a una planilla.
type MovementExporter interface {
	ExportMovements(rows []dto.MovementResponse) ([]byte, error)
}
