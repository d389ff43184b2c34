package sales

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// Receipt genera el comprovante PDF de una venta ya confirmada (o posterior).
func (uc *UseCase) Receipt(ctx context.Context, saleID string) ([]byte, string, error) {
	if uc.receipts == nil {
		return nil, "", domain.Validation("generación de comprovantes no configurada")
	}
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if s == nil {
		return nil, "", domain.NotFound("venta", saleID)
	}
	if s.Status == entity.SaleStatusDraft {
		return nil, "", domain.InvalidState(saleID, "la venta %s sigue en borrador", saleID)
	}
	client, err := uc.clientRepo.GetByID(ctx, s.ClientID)
	if err != nil {
		return nil, "", err
	}
	products := make(map[string]*entity.Product, len(s.Items))
	for _, it := range s.Items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, "", err
		}
		if p != nil {
			products[it.ProductID] = p
		}
	}
	payments, err := uc.paymentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.receipts.GenerateReceipt(ctx, ReceiptData{
		StoreName: uc.opts.StoreName,
		Sale:      s,
		Client:    client,
		Products:  products,
		Payments:  payments,
	})
	if err != nil {
		return nil, "", err
	}
	return pdf, "comprovante-" + s.SaleNumber + ".pdf", nil
}
