package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
	"github.com/jhoicas/optica-erp/internal/infrastructure/memory"
)

func TestRun_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.Run(ctx, func(repos repository.TxRepositories) error {
		rec, err := repos.Inventory.GetForUpdate(ctx, "P1", "loja")
		if err != nil {
			return err
		}
		rec.CurrentStock = decimal.NewFromInt(5)
		return repos.Inventory.Save(ctx, rec)
	})
	require.NoError(t, err)

	rec, err := store.Repositories().Inventory.Get(ctx, "P1", "loja")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.CurrentStock.Equal(decimal.NewFromInt(5)))
}

func TestRun_ErrorDescartaTodo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")

	err := store.Run(ctx, func(repos repository.TxRepositories) error {
		if _, err := repos.Inventory.GetForUpdate(ctx, "P1", "loja"); err != nil {
			return err
		}
		if err := repos.Movements.Create(ctx, &entity.InventoryMovement{ProductID: "P1"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	rec, err := store.Repositories().Inventory.Get(ctx, "P1", "loja")
	require.NoError(t, err)
	assert.Nil(t, rec, "el registro creado dentro de la tx no debe sobrevivir al rollback")

	movs, err := store.Repositories().Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestNextSaleNumber_SecuenciaPorPrefijo(t *testing.T) {
	ctx := context.Background()
	sales := memory.NewStore().Repositories().Sales

	n1, _ := sales.NextSaleNumber(ctx, "VD")
	n2, _ := sales.NextSaleNumber(ctx, "VD")
	t1, _ := sales.NextSaleNumber(ctx, "TSO")

	assert.Equal(t, "VD-000001", n1)
	assert.Equal(t, "VD-000002", n2)
	assert.Equal(t, "TSO-000001", t1)
}

func TestClientRepo_TaxIDDuplicado(t *testing.T) {
	ctx := context.Background()
	clients := memory.NewStore().Repositories().Clients

	require.NoError(t, clients.Create(ctx, &entity.Client{ID: "c1", Name: "Ana", TaxID: "123"}))
	err := clients.Create(ctx, &entity.Client{ID: "c2", Name: "Bia", TaxID: "123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSaleRepo_LineasAisladas(t *testing.T) {
	ctx := context.Background()
	sales := memory.NewStore().Repositories().Sales
	s := &entity.Sale{ID: "s1", SaleNumber: "VD-000001", Items: []entity.SaleItem{{ProductID: "P1", Quantity: decimal.NewFromInt(1)}}}
	require.NoError(t, sales.Create(ctx, s))

	got, err := sales.GetByID(ctx, "s1")
	require.NoError(t, err)
	got.Items[0].ProductID = "X"

	again, _ := sales.GetByID(ctx, "s1")
	assert.Equal(t, "P1", again.Items[0].ProductID)
	assert.Equal(t, "s1", again.Items[0].SaleID)
	assert.NotEmpty(t, again.Items[0].ID)
}
