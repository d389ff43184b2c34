package sales

import (
	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// ToSaleResponse mapea la entidad venta (con líneas) al DTO de salida.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:             s.ID,
		SaleNumber:     s.SaleNumber,
		Kind:           s.Kind,
		ClientID:       s.ClientID,
		UserID:         s.UserID,
		PrescriptionID: s.PrescriptionID,
		Location:       s.Location,
		Status:         s.Status,
		PaymentStatus:  s.PaymentStatus,
		Subtotal:       s.Subtotal,
		Discount:       s.Discount,
		Tax:            s.Tax,
		Total:          s.Total,
		PaidAmount:     s.PaidAmount,
		PaymentMethod:  s.PaymentMethod,
		Notes:          s.Notes,
		ConfirmedAt:    s.ConfirmedAt,
		CancelledAt:    s.CancelledAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountAmount: it.DiscountAmount,
			Subtotal:       it.Subtotal,
		})
	}
	return out
}

// ToPaymentResponse mapea un abono al DTO.
func ToPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:     p.ID,
		SaleID: p.SaleID,
		Amount: p.Amount,
		Method: p.Method,
		UserID: p.UserID,
		PaidAt: p.PaidAt,
	}
}
