package inventory

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) ([]dto.MovementResponse, error) {
	input := MovementInputDTO{
		UserID:       userID,
		ProductID:    in.ProductID,
		Location:     in.Location,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Type:         in.Type,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		Reason:       in.Reason,
		Reference:    in.Reference,
		ReferenceID:  in.ReferenceID,
	}
	return uc.RegisterMovement(ctx, input)
}
