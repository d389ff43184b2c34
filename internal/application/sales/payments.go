package sales

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
	"github.com/jhoicas/optica-erp/internal/domain/sale"
)

// RegisterPayment registra un abono. El estado de pago evoluciona aparte del cumplimiento:
// se admite sobre borradores y se rechaza sobre ventas canceladas o si excede el total.
func (uc *UseCase) RegisterPayment(ctx context.Context, saleID, userID string, in dto.RegisterPaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.Validation("el monto del abono debe ser mayor a 0")
	}
	if !entity.ValidPaymentMethod(in.Method) {
		return nil, domain.Validation("medio de pago desconocido: %q", in.Method)
	}

	now := uc.now()
	p := &entity.Payment{
		ID:     uuid.New().String(),
		SaleID: saleID,
		Amount: in.Amount,
		Method: in.Method,
		UserID: userID,
		PaidAt: now,
	}
	var s *entity.Sale
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		s, err = lockSale(ctx, repos, saleID)
		if err != nil {
			return err
		}
		if s.Status == entity.SaleStatusCancelled {
			return domain.InvalidState(saleID, "la venta %s está cancelada", saleID)
		}
		paid := s.PaidAmount.Add(in.Amount)
		if paid.GreaterThan(s.Total) {
			return domain.Validation("el abono excede el saldo: total %s, abonado %s, nuevo abono %s", s.Total, s.PaidAmount, in.Amount)
		}
		if err := repos.Payments.Create(ctx, p); err != nil {
			return err
		}
		s.PaidAmount = paid
		s.PaymentStatus = sale.PaymentStatusFor(paid, s.Total)
		if s.PaymentMethod == "" {
			s.PaymentMethod = in.Method
		}
		s.UpdatedAt = now
		return repos.Sales.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", saleID).Str("amount", in.Amount.String()).
		Str("payment_status", s.PaymentStatus).Msg("abono registrado")
	out := ToPaymentResponse(p)
	return &out, nil
}

// ListPayments abonos de una venta en orden de registro.
func (uc *UseCase) ListPayments(ctx context.Context, saleID string) ([]dto.PaymentResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta", saleID)
	}
	list, err := uc.paymentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToPaymentResponse(p))
	}
	return out, nil
}
