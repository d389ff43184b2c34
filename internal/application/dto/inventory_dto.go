package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Para transfer se usan fromLocation y toLocation; para el resto, location.
type RegisterMovementRequest struct {
	ProductID    string           `json:"productId" validate:"required"`
	Type         string           `json:"type" validate:"required,oneof=in out adjustment transfer return"`
	Location     string           `json:"location,omitempty"`
	FromLocation string           `json:"fromLocation,omitempty"`
	ToLocation   string           `json:"toLocation,omitempty"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unitCost,omitempty"`
	Reason       string           `json:"reason,omitempty" validate:"max=500"`
	Reference    string           `json:"reference,omitempty" validate:"max=50"`
	ReferenceID  string           `json:"referenceId,omitempty" validate:"max=100"`
}

// SetLevelsRequest body para PUT /api/inventory/:productId/levels.
type SetLevelsRequest struct {
	Location string           `json:"location"`
	MinStock decimal.Decimal  `json:"minStock"`
	MaxStock *decimal.Decimal `json:"maxStock,omitempty"`
}

// InventoryRecordResponse salida de un registro de inventario.
type InventoryRecordResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"productId"`
	Location      string           `json:"location"`
	CurrentStock  decimal.Decimal  `json:"currentStock"`
	ReservedStock decimal.Decimal  `json:"reservedStock"`
	Available     decimal.Decimal  `json:"available"`
	MinStock      decimal.Decimal  `json:"minStock"`
	MaxStock      *decimal.Decimal `json:"maxStock,omitempty"`
	CostPrice     decimal.Decimal  `json:"costPrice"`
	AverageCost   decimal.Decimal  `json:"averageCost"`
	LastUpdated   time.Time        `json:"lastUpdated"`
}

// MovementResponse salida de una entrada del libro.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transactionId"`
	ProductID     string          `json:"productId"`
	InventoryID   string          `json:"inventoryId"`
	Location      string          `json:"location"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previousStock"`
	NewStock      decimal.Decimal `json:"newStock"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	Reason        string          `json:"reason,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	ReferenceID   string          `json:"referenceId,omitempty"`
	UserID        string          `json:"userId,omitempty"`
	MovementDate  time.Time       `json:"movementDate"`
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	ProductID   string     `query:"productId"`
	Location    string     `query:"location"`
	ReferenceID string     `query:"referenceId"`
	Type        string     `query:"type" validate:"omitempty,oneof=in out adjustment transfer return"`
	From        *time.Time `query:"-"`
	To          *time.Time `query:"-"`
	PageRequest
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un registro bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID          string           `json:"productId"`
	SKU                string           `json:"sku"`
	ProductName        string           `json:"productName"`
	Location           string           `json:"location"`
	CurrentStock       decimal.Decimal  `json:"currentStock"`
	MinStock           decimal.Decimal  `json:"minStock"`
	MaxStock           *decimal.Decimal `json:"maxStock,omitempty"`
	Deficit            decimal.Decimal  `json:"deficit"`            // MinStock - CurrentStock
	SuggestedOrderQty  decimal.Decimal  `json:"suggestedOrderQty"`  // MaxStock - CurrentStock, o 1.5*MinStock - CurrentStock
	AverageCost        decimal.Decimal  `json:"averageCost"`
	EstimatedOrderCost decimal.Decimal  `json:"estimatedOrderCost"` // SuggestedOrderQty * AverageCost
	Priority           int              `json:"priority"`           // 1 = más urgente
}
