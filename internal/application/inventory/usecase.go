package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (in, out, adjustment, transfer, return) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner        TxRunner
	defaultLocation string
	log             zerolog.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, defaultLocation string, log zerolog.Logger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:        txRunner,
		defaultLocation: defaultLocation,
		log:             log,
	}
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
// Para in/out/adjustment/return: ProductID, Location, Type, Quantity; UnitCost obligatorio en in.
// Para transfer: ProductID, FromLocation, ToLocation, Quantity.
type MovementInputDTO struct {
	UserID       string
	ProductID    string
	Location     string
	FromLocation string
	ToLocation   string
	Type         string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Reason       string
	Reference    string
	ReferenceID  string
}

func (uc *RegisterMovementUseCase) validate(input *MovementInputDTO) error {
	if input.ProductID == "" {
		return domain.Validation("productId es obligatorio")
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeReturn:
		if !input.Quantity.IsPositive() {
			return domain.Validation("la cantidad debe ser mayor a 0")
		}
		if input.Type == entity.MovementTypeIn && (input.UnitCost == nil || input.UnitCost.IsNegative()) {
			return domain.Validation("unitCost es obligatorio y no negativo en una entrada")
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity.IsZero() {
			return domain.Validation("el ajuste no puede ser cero")
		}
		if input.UnitCost != nil && input.UnitCost.IsNegative() {
			return domain.Validation("unitCost no puede ser negativo")
		}
	case entity.MovementTypeTransfer:
		if input.FromLocation == "" || input.ToLocation == "" {
			return domain.Validation("fromLocation y toLocation son obligatorios en un traslado")
		}
		if input.FromLocation == input.ToLocation {
			return domain.Validation("origen y destino del traslado deben ser distintos")
		}
		if !input.Quantity.IsPositive() {
			return domain.Validation("la cantidad debe ser mayor a 0")
		}
		return nil
	default:
		return domain.Validation("tipo de movimiento desconocido: %q", input.Type)
	}
	if input.Location == "" {
		input.Location = uc.defaultLocation
	}
	return nil
}

// RegisterMovement inicia una transacción, bloquea las filas de inventory (SELECT FOR UPDATE),
// aplica la lógica según el tipo y hace Commit o Rollback. Devuelve las entradas escritas en el libro.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) ([]dto.MovementResponse, error) {
	if err := uc.validate(&input); err != nil {
		return nil, err
	}

	now := time.Now()
	txID := uuid.New().String()
	var written []*entity.InventoryMovement

	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		product, err := repos.Products.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto", input.ProductID)
		}

		if input.Type == entity.MovementTypeTransfer {
			written, err = uc.doTransfer(ctx, repos, input, now, txID)
			return err
		}

		rec, err := repos.Inventory.GetForUpdate(ctx, input.ProductID, input.Location)
		if err != nil {
			return err
		}
		entry := Entry{
			Type:          input.Type,
			Quantity:      input.Quantity,
			TransactionID: txID,
			Reason:        input.Reason,
			Reference:     referenceOr(input.Reference, entity.ReferenceManual),
			ReferenceID:   input.ReferenceID,
			UserID:        input.UserID,
			At:            now,
		}
		switch input.Type {
		case entity.MovementTypeIn:
			entry.UnitCost = input.UnitCost
		case entity.MovementTypeOut:
			entry.Quantity = input.Quantity.Neg()
		case entity.MovementTypeAdjustment:
			// positivo como entrada (costo opcional), negativo como salida
			if input.Quantity.IsPositive() {
				entry.UnitCost = input.UnitCost
			}
		}
		mov, err := Apply(ctx, repos, rec, entry)
		if err != nil {
			return err
		}
		written = []*entity.InventoryMovement{mov}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", input.ProductID).
		Str("type", input.Type).
		Str("quantity", input.Quantity.String()).
		Str("transaction_id", txID).
		Msg("movimiento de inventario registrado")

	out := make([]dto.MovementResponse, 0, len(written))
	for _, m := range written {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// doTransfer escribe dos tramos con el mismo TransactionID: salida en origen y entrada en destino.
// Las dos filas se bloquean en orden de local para evitar deadlocks entre traslados cruzados.
func (uc *RegisterMovementUseCase) doTransfer(
	ctx context.Context,
	repos repository.TxRepositories,
	input MovementInputDTO,
	now time.Time, txID string,
) ([]*entity.InventoryMovement, error) {
	locations := []string{input.FromLocation, input.ToLocation}
	sort.Strings(locations)
	locked := make(map[string]*entity.InventoryRecord, 2)
	for _, loc := range locations {
		rec, err := repos.Inventory.GetForUpdate(ctx, input.ProductID, loc)
		if err != nil {
			return nil, err
		}
		locked[loc] = rec
	}
	origin, dest := locked[input.FromLocation], locked[input.ToLocation]

	reason := input.Reason
	if reason == "" {
		reason = "Transfer " + input.FromLocation + " -> " + input.ToLocation
	}
	base := Entry{
		Type:          entity.MovementTypeTransfer,
		TransactionID: txID,
		Reason:        reason,
		Reference:     referenceOr(input.Reference, entity.ReferenceTransfer),
		ReferenceID:   input.ReferenceID,
		UserID:        input.UserID,
		At:            now,
	}

	// La entrada en destino se valoriza al costo promedio del origen.
	originCost := origin.AverageCost
	outEntry := base
	outEntry.Quantity = input.Quantity.Neg()
	outMov, err := Apply(ctx, repos, origin, outEntry)
	if err != nil {
		return nil, err
	}
	inEntry := base
	inEntry.Quantity = input.Quantity
	inEntry.UnitCost = &originCost
	inMov, err := Apply(ctx, repos, dest, inEntry)
	if err != nil {
		return nil, err
	}
	return []*entity.InventoryMovement{outMov, inMov}, nil
}

func referenceOr(ref, def string) string {
	if ref == "" {
		return def
	}
	return ref
}
