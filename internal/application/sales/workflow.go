package sales

import (
	"context"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/application/inventory"
	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	stock "github.com/jhoicas/optica-erp/internal/domain/inventory"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
	"github.com/jhoicas/optica-erp/internal/domain/sale"
)

// Confirm confirma un borrador: verifica disponibilidad de toda la demanda, descuenta cada línea
// y escribe una salida "Sale #<id>" por línea. Todo o nada en una sola transacción.
func (uc *UseCase) Confirm(ctx context.Context, saleID, userID string) (*dto.SaleResponse, error) {
	var s *entity.Sale
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		s, err = lockSale(ctx, repos, saleID)
		if err != nil {
			return err
		}
		if !sale.CanConfirm(s.Status) {
			return domain.InvalidState(saleID, "la venta %s está en estado %s y no se puede confirmar", saleID, s.Status)
		}

		records, err := lockDemand(ctx, repos, s)
		if err != nil {
			return err
		}
		for _, d := range sale.AggregateDemand(s.Items) {
			rec := records[d.ProductID]
			if !stock.HasAvailable(rec, d.Quantity) {
				return domain.InsufficientStock(d.ProductID, s.Location, d.Quantity, rec.Available())
			}
		}

		now := uc.now()
		for _, it := range s.Items {
			if _, err := inventory.RecordSaleOutInTx(ctx, repos, records[it.ProductID], saleID, userID, it.Quantity, now); err != nil {
				return err
			}
		}
		s.Status = entity.SaleStatusConfirmed
		s.ConfirmedAt = &now
		s.UpdatedAt = now
		return repos.Sales.Update(ctx, s)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("sale_id", saleID).Msg("confirmación de venta rechazada")
		return nil, err
	}

	uc.log.Info().Str("sale_id", s.ID).Str("sale_number", s.SaleNumber).Int("items", len(s.Items)).
		Str("location", s.Location).Msg("venta confirmada")
	out := ToSaleResponse(s)
	return &out, nil
}

// Cancel cancela una venta draft, confirmed o processing. Si ya había descontado stock y la
// reposición está habilitada, devuelve cada línea al inventario con una entrada return.
func (uc *UseCase) Cancel(ctx context.Context, saleID, userID string) (*dto.SaleResponse, error) {
	var s *entity.Sale
	restocked := false
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		s, err = lockSale(ctx, repos, saleID)
		if err != nil {
			return err
		}
		if !sale.CanCancel(s.Status) {
			return domain.InvalidState(saleID, "la venta %s está en estado %s y no se puede cancelar", saleID, s.Status)
		}

		now := uc.now()
		if uc.opts.RestockOnCancel && sale.ConsumedStock(s.Status) {
			records, err := lockDemand(ctx, repos, s)
			if err != nil {
				return err
			}
			for _, it := range s.Items {
				if _, err := inventory.RecordSaleReturnInTx(ctx, repos, records[it.ProductID], saleID, userID, it.Quantity, now); err != nil {
					return err
				}
			}
			restocked = true
		}
		s.Status = entity.SaleStatusCancelled
		s.PaymentStatus = entity.PaymentStatusCancelled
		s.CancelledAt = &now
		s.UpdatedAt = now
		return repos.Sales.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", s.ID).Bool("restocked", restocked).Msg("venta cancelada")
	out := ToSaleResponse(s)
	return &out, nil
}

// Advance mueve una venta confirmada por processing hasta completed. No toca inventario.
func (uc *UseCase) Advance(ctx context.Context, saleID, target string) (*dto.SaleResponse, error) {
	var s *entity.Sale
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		s, err = lockSale(ctx, repos, saleID)
		if err != nil {
			return err
		}
		if !sale.CanAdvance(s.Status, target) {
			return domain.InvalidState(saleID, "transición %s -> %s no permitida", s.Status, target)
		}
		s.Status = target
		s.UpdatedAt = uc.now()
		return repos.Sales.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	out := ToSaleResponse(s)
	return &out, nil
}

// lockDemand bloquea el registro de cada producto de la venta en su local, en orden de productId.
func lockDemand(ctx context.Context, repos repository.TxRepositories, s *entity.Sale) (map[string]*entity.InventoryRecord, error) {
	demand := sale.AggregateDemand(s.Items)
	records := make(map[string]*entity.InventoryRecord, len(demand))
	for _, d := range demand {
		rec, err := repos.Inventory.GetForUpdate(ctx, d.ProductID, s.Location)
		if err != nil {
			return nil, err
		}
		records[d.ProductID] = rec
	}
	return records, nil
}
