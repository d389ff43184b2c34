package inventory

import (
	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// ToRecordResponse mapea un registro de inventario a su DTO.
func ToRecordResponse(r *entity.InventoryRecord) dto.InventoryRecordResponse {
	return dto.InventoryRecordResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		Location:      r.Location,
		CurrentStock:  r.CurrentStock,
		ReservedStock: r.ReservedStock,
		Available:     r.Available(),
		MinStock:      r.MinStock,
		MaxStock:      r.MaxStock,
		CostPrice:     r.CostPrice,
		AverageCost:   r.AverageCost,
		LastUpdated:   r.LastUpdated,
	}
}

// ToMovementResponse mapea una entrada del libro a su DTO.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		InventoryID:   m.InventoryID,
		Location:      m.Location,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		Reason:        m.Reason,
		Reference:     m.Reference,
		ReferenceID:   m.ReferenceID,
		UserID:        m.UserID,
		MovementDate:  m.MovementDate,
	}
}
