package sales

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con todos los repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error
}

// ReceiptData datos necesarios para el comprovante de una venta.
type ReceiptData struct {
	StoreName string
	Sale      *entity.Sale
	Client    *entity.Client
	Products  map[string]*entity.Product
	Payments  []*entity.Payment
}

// ReceiptGenerator genera el comprovante (no fiscal) de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
