package inventory

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

// QueryUseCase lecturas de inventario y del libro, niveles mínimo/máximo y exportación.
type QueryUseCase struct {
	inventoryRepo   repository.InventoryRepository
	movementRepo    repository.InventoryMovementRepository
	productRepo     repository.ProductRepository
	exporter        MovementExporter
	defaultLocation string
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	exporter MovementExporter,
	defaultLocation string,
) *QueryUseCase {
	return &QueryUseCase{
		inventoryRepo:   inventoryRepo,
		movementRepo:    movementRepo,
		productRepo:     productRepo,
		exporter:        exporter,
		defaultLocation: defaultLocation,
	}
}

func (uc *QueryUseCase) location(loc string) string {
	if loc == "" {
		return uc.defaultLocation
	}
	return loc
}

// GetRecord devuelve el registro de un producto en un local; NotFound si nunca tuvo movimientos.
func (uc *QueryUseCase) GetRecord(ctx context.Context, productID, location string) (*dto.InventoryRecordResponse, error) {
	location = uc.location(location)
	rec, err := uc.inventoryRepo.Get(ctx, productID, location)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NotFound("registro de inventario", productID)
	}
	out := ToRecordResponse(rec)
	return &out, nil
}

// ListByLocation lista los registros de un local (vacío = todos los locales).
func (uc *QueryUseCase) ListByLocation(ctx context.Context, location string, page dto.PageRequest) ([]dto.InventoryRecordResponse, error) {
	page.DefaultPage()
	list, err := uc.inventoryRepo.ListByLocation(ctx, location, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, ToRecordResponse(rec))
	}
	return out, nil
}

// SetLevels actualiza stock mínimo y máximo. Crea el registro si el producto aún no tenía stock en el local.
func (uc *QueryUseCase) SetLevels(ctx context.Context, productID string, in dto.SetLevelsRequest) (*dto.InventoryRecordResponse, error) {
	if in.MinStock.IsNegative() {
		return nil, domain.Validation("minStock no puede ser negativo")
	}
	if in.MaxStock != nil && in.MaxStock.LessThan(in.MinStock) {
		return nil, domain.Validation("maxStock debe ser mayor o igual a minStock")
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", productID)
	}
	rec, err := uc.inventoryRepo.SetLevels(ctx, productID, uc.location(in.Location), in.MinStock, in.MaxStock)
	if err != nil {
		return nil, err
	}
	out := ToRecordResponse(rec)
	return &out, nil
}

// ListMovements consulta el libro (por producto, por referencia como una venta, por local o tipo).
func (uc *QueryUseCase) ListMovements(ctx context.Context, q dto.MovementQuery) ([]dto.MovementResponse, error) {
	q.DefaultPage()
	return uc.listMovements(ctx, q, q.Limit)
}

// ExportMovements genera la planilla XLSX del libro filtrado, sin paginar.
func (uc *QueryUseCase) ExportMovements(ctx context.Context, q dto.MovementQuery) ([]byte, error) {
	q.Offset = 0
	rows, err := uc.listMovements(ctx, q, 0)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportMovements(rows)
}

func (uc *QueryUseCase) listMovements(ctx context.Context, q dto.MovementQuery, limit int) ([]dto.MovementResponse, error) {
	list, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		ProductID:   q.ProductID,
		Location:    q.Location,
		ReferenceID: q.ReferenceID,
		Type:        q.Type,
		From:        q.From,
		To:          q.To,
		Limit:       limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}
