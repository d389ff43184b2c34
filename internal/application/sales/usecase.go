// Package sales implementa el agregado Venta y su flujo de confirmación contra el inventario.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
	"github.com/jhoicas/optica-erp/internal/domain/sale"
)

// Options reglas operativas de ventas (ver pkg/config.SalesConfig).
type Options struct {
	StoreName       string
	DefaultLocation string
	RestockOnCancel bool
	NumberPrefix    string
	TSOPrefix       string
}

// UseCase casos de uso de ventas. Toda escritura corre dentro de TxRunner.Run.
type UseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	paymentRepo repository.PaymentRepository
	receipts    ReceiptGenerator
	opts        Options
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
	receipts ReceiptGenerator,
	opts Options,
	log zerolog.Logger,
) *UseCase {
	if opts.NumberPrefix == "" {
		opts.NumberPrefix = "VD"
	}
	if opts.TSOPrefix == "" {
		opts.TSOPrefix = "TSO"
	}
	return &UseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		receipts:    receipts,
		opts:        opts,
		log:         log,
		now:         time.Now,
	}
}

// CreateDraft crea una venta en borrador. Cliente y productos deben existir (NotFound nombra el id).
func (uc *UseCase) CreateDraft(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	kind := in.Kind
	if kind == "" {
		kind = entity.SaleKindStandard
	}
	if kind != entity.SaleKindStandard && kind != entity.SaleKindTSO {
		return nil, domain.Validation("tipo de venta desconocido: %q", in.Kind)
	}
	if in.PaymentMethod != "" && !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.Validation("medio de pago desconocido: %q", in.PaymentMethod)
	}
	location := in.Location
	if location == "" {
		location = uc.opts.DefaultLocation
	}
	prefix := uc.opts.NumberPrefix
	if kind == entity.SaleKindTSO {
		prefix = uc.opts.TSOPrefix
	}

	now := uc.now()
	s := &entity.Sale{
		ID:             uuid.New().String(),
		Kind:           kind,
		ClientID:       in.ClientID,
		UserID:         userID,
		PrescriptionID: in.PrescriptionID,
		Location:       location,
		Status:         entity.SaleStatusDraft,
		PaymentStatus:  entity.PaymentStatusPending,
		Discount:       in.Discount,
		Tax:            in.Tax,
		PaidAmount:     decimal.Zero,
		PaymentMethod:  in.PaymentMethod,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		client, err := repos.Clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.NotFound("cliente", in.ClientID)
		}
		items, err := buildItems(ctx, repos.Products, in.Items)
		if err != nil {
			return err
		}
		s.Items = items
		if err := sale.Recalculate(s); err != nil {
			return err
		}
		number, err := repos.Sales.NextSaleNumber(ctx, prefix)
		if err != nil {
			return err
		}
		s.SaleNumber = number
		return repos.Sales.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", s.ID).Str("sale_number", s.SaleNumber).Str("client_id", s.ClientID).
		Str("total", s.Total.String()).Msg("venta creada en borrador")
	out := ToSaleResponse(s)
	return &out, nil
}

// buildItems valida productos y rangos de cada línea; el precio por defecto es el del catálogo.
func buildItems(ctx context.Context, products repository.ProductRepository, in []dto.SaleItemRequest) ([]entity.SaleItem, error) {
	if len(in) == 0 {
		return nil, domain.Validation("la venta debe tener al menos una línea")
	}
	items := make([]entity.SaleItem, 0, len(in))
	for _, it := range in {
		p, err := products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.NotFound("producto", it.ProductID)
		}
		if !p.Active {
			return nil, domain.Validation("el producto %s está inactivo", it.ProductID)
		}
		price := p.Price
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		items = append(items, entity.SaleItem{
			ID:             uuid.New().String(),
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPrice:      price,
			DiscountAmount: it.Discount,
		})
	}
	return items, nil
}

// ReplaceItems reemplaza todas las líneas de un borrador y recalcula los totales.
func (uc *UseCase) ReplaceItems(ctx context.Context, saleID string, in []dto.SaleItemRequest) (*dto.SaleResponse, error) {
	var s *entity.Sale
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		s, err = lockSale(ctx, repos, saleID)
		if err != nil {
			return err
		}
		if !sale.CanEditItems(s.Status) {
			return domain.InvalidState(saleID, "la venta %s está en estado %s y sus líneas no se pueden modificar", saleID, s.Status)
		}
		items, err := buildItems(ctx, repos.Products, in)
		if err != nil {
			return err
		}
		s.Items = items
		if err := sale.Recalculate(s); err != nil {
			return err
		}
		if s.PaidAmount.GreaterThan(s.Total) {
			return domain.Validation("el nuevo total %s queda por debajo de lo abonado %s", s.Total, s.PaidAmount)
		}
		s.PaymentStatus = sale.PaymentStatusFor(s.PaidAmount, s.Total)
		s.UpdatedAt = uc.now()
		if err := repos.Sales.ReplaceItems(ctx, saleID, s.Items); err != nil {
			return err
		}
		return repos.Sales.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	out := ToSaleResponse(s)
	return &out, nil
}

// Get devuelve una venta con sus líneas.
func (uc *UseCase) Get(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta", saleID)
	}
	out := ToSaleResponse(s)
	return &out, nil
}

// List lista cabeceras de venta con filtros opcionales.
func (uc *UseCase) List(ctx context.Context, q dto.SaleQuery) (*dto.SaleListResponse, error) {
	q.DefaultPage()
	list, err := uc.saleRepo.List(ctx, repository.SaleFilter{
		Status: q.Status, ClientID: q.ClientID, Limit: q.Limit, Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

func lockSale(ctx context.Context, repos repository.TxRepositories, saleID string) (*entity.Sale, error) {
	s, err := repos.Sales.GetForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta", saleID)
	}
	return s, nil
}
