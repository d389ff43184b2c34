package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	stock "github.com/jhoicas/optica-erp/internal/domain/inventory"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

// Entry describe un movimiento a aplicar sobre un registro ya bloqueado por el llamador.
type Entry struct {
	Type          string
	Quantity      decimal.Decimal  // con signo: positivo entra, negativo sale
	UnitCost      *decimal.Decimal // solo entradas valorizadas; nil = costo promedio actual
	TransactionID string
	Reason        string
	Reference     string
	ReferenceID   string
	UserID        string
	At            time.Time
}

// Apply aplica e sobre rec dentro de la transacción de repos: verifica disponibilidad en salidas,
// ajusta el stock, persiste el registro y anexa la entrada al libro.
func Apply(ctx context.Context, repos repository.TxRepositories, rec *entity.InventoryRecord, e Entry) (*entity.InventoryMovement, error) {
	if e.Quantity.IsZero() {
		return nil, domain.Validation("cantidad cero para el producto %s", rec.ProductID)
	}
	var adj stock.Adjustment
	unitCost := rec.AverageCost
	switch {
	case e.Quantity.IsNegative():
		qty := e.Quantity.Neg()
		if !stock.HasAvailable(rec, qty) {
			return nil, domain.InsufficientStock(rec.ProductID, rec.Location, qty, rec.Available())
		}
		adj = stock.Adjust(rec, e.Quantity, e.At)
	case e.UnitCost != nil:
		unitCost = *e.UnitCost
		adj = stock.ApplyEntry(rec, e.Quantity, unitCost, e.At)
	default:
		adj = stock.Adjust(rec, e.Quantity, e.At)
	}

	if err := repos.Inventory.Save(ctx, rec); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		TransactionID: e.TransactionID,
		ProductID:     rec.ProductID,
		InventoryID:   rec.ID,
		Location:      rec.Location,
		Type:          e.Type,
		Quantity:      adj.Applied,
		PreviousStock: adj.Previous,
		NewStock:      adj.New,
		UnitCost:      unitCost,
		TotalCost:     adj.Applied.Mul(unitCost),
		Reason:        e.Reason,
		Reference:     e.Reference,
		ReferenceID:   e.ReferenceID,
		UserID:        e.UserID,
		MovementDate:  e.At,
		CreatedAt:     e.At,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordSaleOutInTx descuenta una línea de venta confirmada (salida "Sale #<id>").
func RecordSaleOutInTx(ctx context.Context, repos repository.TxRepositories, rec *entity.InventoryRecord,
	saleID, userID string, qty decimal.Decimal, now time.Time) (*entity.InventoryMovement, error) {
	return Apply(ctx, repos, rec, Entry{
		Type:          entity.MovementTypeOut,
		Quantity:      qty.Neg(),
		TransactionID: saleID,
		Reason:        "Sale #" + saleID,
		Reference:     entity.ReferenceSale,
		ReferenceID:   saleID,
		UserID:        userID,
		At:            now,
	})
}

// RecordSaleReturnInTx repone una línea de una venta cancelada al costo promedio actual.
func RecordSaleReturnInTx(ctx context.Context, repos repository.TxRepositories, rec *entity.InventoryRecord,
	saleID, userID string, qty decimal.Decimal, now time.Time) (*entity.InventoryMovement, error) {
	return Apply(ctx, repos, rec, Entry{
		Type:          entity.MovementTypeReturn,
		Quantity:      qty,
		TransactionID: saleID,
		Reason:        "Sale #" + saleID + " cancelled",
		Reference:     entity.ReferenceSale,
		ReferenceID:   saleID,
		UserID:        userID,
		At:            now,
	})
}
