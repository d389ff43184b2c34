package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/application/usecase"
	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/infrastructure/memory"
)

func TestProductUseCase_CrearYConsultar(t *testing.T) {
	repos := memory.NewStore().Repositories()
	uc := usecase.NewProductUseCase(repos.Products)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{
		SKU: "ARM-001", Name: "Armação Aviador", Category: "frame", Brand: "Ray-Ban", Price: decimal.NewFromInt(350),
	})
	require.NoError(t, err)
	assert.True(t, p.Active, "activo por defecto")

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "ARM-001", got.SKU)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "ARM-001", Name: "Otra", Category: "frame"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_ValidaCategoriaYPrecio(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Repositories().Products)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "X", Category: "relógio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "X", Category: "lens", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_ActualizarYFiltrar(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewStore().Repositories().Products)
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "LEN-001", Name: "Lente", Category: "lens", Price: decimal.NewFromInt(200)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "ARM-001", Name: "Armação", Category: "frame", Price: decimal.NewFromInt(300)})
	require.NoError(t, err)

	inactive := false
	price := decimal.NewFromInt(180)
	upd, err := uc.Update(ctx, a.ID, dto.UpdateProductRequest{Active: &inactive, Price: &price})
	require.NoError(t, err)
	assert.False(t, upd.Active)
	assert.True(t, upd.Price.Equal(price))

	dup := "ARM-001"
	_, err = uc.Update(ctx, a.ID, dto.UpdateProductRequest{SKU: &dup})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(ctx, dto.ProductQuery{Active: "true"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "ARM-001", list.Items[0].SKU)

	list, err = uc.List(ctx, dto.ProductQuery{Category: "lens"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, a.ID, list.Items[0].ID)
}

func TestClientUseCase_CPFUnico(t *testing.T) {
	uc := usecase.NewClientUseCase(memory.NewStore().Repositories().Clients)
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Maria Souza", TaxID: "123.456.789-00"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Outra Maria", TaxID: "123.456.789-00"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Sem CPF"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", got.Name)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 20, list.Page.Limit)
}
