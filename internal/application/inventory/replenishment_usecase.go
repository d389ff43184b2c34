package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de un local.
type ReplenishmentUseCase struct {
	inventoryRepo repository.InventoryRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(inventoryRepo repository.InventoryRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{inventoryRepo: inventoryRepo}
}

// GenerateReplenishmentList devuelve los productos bajo su stock mínimo con la cantidad sugerida de pedido.
// location vacío considera todos los locales.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, location string) ([]dto.ReplenishmentSuggestionDTO, error) {
	rawItems, err := uc.inventoryRepo.ListBelowMinimum(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rawItems))
	for _, item := range rawItems {
		// Sin máximo configurado: reponer hasta 1.5x el mínimo
		target := item.MinStock.Mul(factor)
		if item.MaxStock != nil {
			target = *item.MaxStock
		}
		suggestedQty := target.Sub(item.CurrentStock)
		if suggestedQty.IsNegative() {
			suggestedQty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          item.ProductID,
			SKU:                item.SKU,
			ProductName:        item.ProductName,
			Location:           item.Location,
			CurrentStock:       item.CurrentStock,
			MinStock:           item.MinStock,
			MaxStock:           item.MaxStock,
			Deficit:            item.MinStock.Sub(item.CurrentStock),
			SuggestedOrderQty:  suggestedQty,
			AverageCost:        item.AverageCost,
			EstimatedOrderCost: suggestedQty.Mul(item.AverageCost),
		})
	}

	// Mayor déficit primero; empate por SKU
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.Deficit.Equal(b.Deficit) {
			return a.Deficit.GreaterThan(b.Deficit)
		}
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		return a.Location < b.Location
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
