package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/application/inventory"
	"github.com/jhoicas/optica-erp/internal/application/sales"
	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
	"github.com/jhoicas/optica-erp/internal/infrastructure/memory"
)

const (
	vendedor = "00000000-0000-0000-0000-000000000002"
	loja     = "loja"
	clientID = "C1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeReceipts struct{ last sales.ReceiptData }

func (f *fakeReceipts) GenerateReceipt(_ context.Context, data sales.ReceiptData) ([]byte, error) {
	f.last = data
	return []byte("%PDF"), nil
}

type fixture struct {
	store    *memory.Store
	repos    repository.TxRepositories
	uc       *sales.UseCase
	stock    *inventory.RegisterMovementUseCase
	receipts *fakeReceipts
}

func defaultOptions() sales.Options {
	return sales.Options{StoreName: "Ótica Centro", DefaultLocation: loja, RestockOnCancel: true}
}

func newFixture(t *testing.T, opts sales.Options, runner sales.TxRunner) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	if runner == nil {
		runner = store
	}
	rc := &fakeReceipts{}
	f := &fixture{
		store:    store,
		repos:    repos,
		uc:       sales.NewUseCase(runner, repos.Sales, repos.Clients, repos.Products, repos.Payments, rc, opts, zerolog.Nop()),
		stock:    inventory.NewRegisterMovementUseCase(store, loja, zerolog.Nop()),
		receipts: rc,
	}
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repos.Clients.Create(ctx, &entity.Client{ID: clientID, Name: "Maria Souza", TaxID: "123.456.789-00", CreatedAt: now, UpdatedAt: now}))
	for _, p := range []entity.Product{
		{ID: "P1", SKU: "ARM-001", Name: "Armação Aviador", Category: entity.CategoryFrame, Price: d("100"), Active: true},
		{ID: "P2", SKU: "LEN-001", Name: "Lente Multifocal", Category: entity.CategoryLens, Price: d("50"), Active: true},
		{ID: "P3", SKU: "ACC-001", Name: "Estojo", Category: entity.CategoryAccessory, Price: d("10"), Active: false},
	} {
		p.CreatedAt, p.UpdatedAt = now, now
		require.NoError(t, repos.Products.Create(ctx, &p))
	}
	return f
}

func (f *fixture) receive(t *testing.T, productID, qty string) {
	t.Helper()
	cost := d("40")
	_, err := f.stock.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		UserID: vendedor, ProductID: productID, Location: loja,
		Type: entity.MovementTypeIn, Quantity: d(qty), UnitCost: &cost,
	})
	require.NoError(t, err)
}

func (f *fixture) currentStock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	rec, err := f.repos.Inventory.Get(context.Background(), productID, loja)
	require.NoError(t, err)
	if rec == nil {
		return decimal.Zero
	}
	return rec.CurrentStock
}

func (f *fixture) movementsOf(t *testing.T, saleID string) []*entity.InventoryMovement {
	t.Helper()
	list, err := f.repos.Movements.List(context.Background(), repository.MovementFilter{ReferenceID: saleID})
	require.NoError(t, err)
	return list
}

func line(productID, qty string) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductID: productID, Quantity: d(qty)}
}

func (f *fixture) draft(t *testing.T, items ...dto.SaleItemRequest) *dto.SaleResponse {
	t.Helper()
	s, err := f.uc.CreateDraft(context.Background(), vendedor, dto.CreateSaleRequest{ClientID: clientID, Items: items})
	require.NoError(t, err)
	return s
}

func TestCreateDraft_CalculaTotalesYNumera(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	price := d("90")
	s, err := f.uc.CreateDraft(context.Background(), vendedor, dto.CreateSaleRequest{
		ClientID: clientID,
		Items: []dto.SaleItemRequest{
			{ProductID: "P1", Quantity: d("2"), Discount: d("10")},
			{ProductID: "P2", Quantity: d("1"), UnitPrice: &price},
		},
		Discount: d("5"),
		Tax:      d("3"),
	})
	require.NoError(t, err)

	assert.Equal(t, "VD-000001", s.SaleNumber)
	assert.Equal(t, entity.SaleStatusDraft, s.Status)
	assert.Equal(t, entity.PaymentStatusPending, s.PaymentStatus)
	assert.Equal(t, loja, s.Location)
	assert.True(t, s.Subtotal.Equal(d("280")), s.Subtotal.String())
	assert.True(t, s.Total.Equal(d("278")), s.Total.String())
	require.Len(t, s.Items, 2)
	assert.True(t, s.Items[0].UnitPrice.Equal(d("100")), "precio del catálogo por defecto")
	assert.True(t, s.Items[0].Subtotal.Equal(d("190")))

	second := f.draft(t, line("P1", "1"))
	assert.Equal(t, "VD-000002", second.SaleNumber)
}

func TestCreateDraft_TSOUsaSuPropioPrefijo(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	s, err := f.uc.CreateDraft(context.Background(), vendedor, dto.CreateSaleRequest{
		ClientID: clientID, Kind: entity.SaleKindTSO, Items: []dto.SaleItemRequest{line("P2", "2")},
	})
	require.NoError(t, err)
	assert.Equal(t, "TSO-000001", s.SaleNumber)
}

func TestCreateDraft_ReferenciasInexistentes(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	ctx := context.Background()

	_, err := f.uc.CreateDraft(ctx, vendedor, dto.CreateSaleRequest{ClientID: "C9", Items: []dto.SaleItemRequest{line("P1", "1")}})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "C9", domain.ResourceID(err))

	_, err = f.uc.CreateDraft(ctx, vendedor, dto.CreateSaleRequest{ClientID: clientID, Items: []dto.SaleItemRequest{line("P9", "1")}})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "P9", domain.ResourceID(err))

	_, err = f.uc.CreateDraft(ctx, vendedor, dto.CreateSaleRequest{ClientID: clientID, Items: []dto.SaleItemRequest{line("P3", "1")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto inactivo")

	list, err := f.uc.List(ctx, dto.SaleQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCreateDraft_RechazaEntradasInvalidas(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	ctx := context.Background()
	cases := map[string]dto.CreateSaleRequest{
		"sin líneas":         {ClientID: clientID},
		"cantidad cero":      {ClientID: clientID, Items: []dto.SaleItemRequest{line("P1", "0")}},
		"descuento excesivo": {ClientID: clientID, Items: []dto.SaleItemRequest{{ProductID: "P1", Quantity: d("1"), Discount: d("101")}}},
		"descuento negativo": {ClientID: clientID, Items: []dto.SaleItemRequest{line("P1", "1")}, Discount: d("-1")},
		"total negativo":     {ClientID: clientID, Items: []dto.SaleItemRequest{line("P1", "1")}, Discount: d("150")},
		"tipo desconocido":   {ClientID: clientID, Kind: "consignado", Items: []dto.SaleItemRequest{line("P1", "1")}},
		"medio de pago":      {ClientID: clientID, PaymentMethod: "cheque", Items: []dto.SaleItemRequest{line("P1", "1")}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.CreateDraft(ctx, vendedor, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestConfirm_DescuentaStockYEscribeLibro(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "5")
	s := f.draft(t, line("P1", "2"))

	out, err := f.uc.Confirm(context.Background(), s.ID, vendedor)
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusConfirmed, out.Status)
	assert.Equal(t, entity.PaymentStatusPending, out.PaymentStatus)
	assert.NotNil(t, out.ConfirmedAt)
	assert.True(t, f.currentStock(t, "P1").Equal(d("3")))

	movs := f.movementsOf(t, s.ID)
	require.Len(t, movs, 1)
	m := movs[0]
	assert.Equal(t, entity.MovementTypeOut, m.Type)
	assert.Equal(t, "Sale #"+s.ID, m.Reason)
	assert.Equal(t, entity.ReferenceSale, m.Reference)
	assert.Equal(t, s.ID, m.TransactionID)
	assert.True(t, m.Quantity.Equal(d("-2")))
	assert.True(t, m.PreviousStock.Equal(d("5")))
	assert.True(t, m.NewStock.Equal(d("3")))
	assert.True(t, m.UnitCost.Equal(d("40")), "salida al costo promedio")
}

func TestConfirm_SegundaVezEsEstadoInvalido(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "5")
	s := f.draft(t, line("P1", "2"))
	ctx := context.Background()

	_, err := f.uc.Confirm(ctx, s.ID, vendedor)
	require.NoError(t, err)
	_, err = f.uc.Confirm(ctx, s.ID, vendedor)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, s.ID, domain.ResourceID(err))

	assert.True(t, f.currentStock(t, "P1").Equal(d("3")))
	assert.Len(t, f.movementsOf(t, s.ID), 1)
}

func TestConfirm_VentaInexistente(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	_, err := f.uc.Confirm(context.Background(), "no-existe", vendedor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_StockInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "5")
	f.receive(t, "P2", "1")
	s := f.draft(t, line("P1", "2"), line("P2", "2"))

	_, err := f.uc.Confirm(context.Background(), s.ID, vendedor)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "P2", domain.ResourceID(err))

	got, err := f.uc.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusDraft, got.Status)
	assert.Nil(t, got.ConfirmedAt)
	assert.True(t, f.currentStock(t, "P1").Equal(d("5")))
	assert.True(t, f.currentStock(t, "P2").Equal(d("1")))
	assert.Empty(t, f.movementsOf(t, s.ID))
}

func TestConfirm_ProductoSinRegistroDeInventario(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	s := f.draft(t, line("P1", "1"))

	_, err := f.uc.Confirm(context.Background(), s.ID, vendedor)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "P1", domain.ResourceID(err))
}

func TestConfirm_MismoProductoEnVariasLineasSumaLaDemanda(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "3")
	s := f.draft(t, line("P1", "2"), line("P1", "2"))

	_, err := f.uc.Confirm(context.Background(), s.ID, vendedor)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.currentStock(t, "P1").Equal(d("3")))

	f.receive(t, "P1", "1")
	_, err = f.uc.Confirm(context.Background(), s.ID, vendedor)
	require.NoError(t, err)
	assert.True(t, f.currentStock(t, "P1").IsZero())

	movs := f.movementsOf(t, s.ID)
	require.Len(t, movs, 2, "una salida por línea")
	assert.True(t, movs[0].NewStock.Equal(d("2")))
	assert.True(t, movs[1].PreviousStock.Equal(d("2")))
	assert.True(t, movs[1].NewStock.IsZero())
}

func TestConfirm_RespetaStockReservado(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "3")
	ctx := context.Background()
	rec, err := f.repos.Inventory.Get(ctx, "P1", loja)
	require.NoError(t, err)
	rec.ReservedStock = d("2")
	require.NoError(t, f.repos.Inventory.Save(ctx, rec))

	s := f.draft(t, line("P1", "2"))
	_, err = f.uc.Confirm(ctx, s.ID, vendedor)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// failingMovements falla en la n-ésima escritura del libro.
type failingMovements struct {
	repository.InventoryMovementRepository
	calls  *int
	failAt int
}

var errDisk = errors.New("disco lleno")

func (m failingMovements) Create(ctx context.Context, mov *entity.InventoryMovement) error {
	*m.calls++
	if *m.calls == m.failAt {
		return domain.Persistence("crear movimiento", errDisk)
	}
	return m.InventoryMovementRepository.Create(ctx, mov)
}

type failingRunner struct {
	store  *memory.Store
	failAt int
}

func (r failingRunner) Run(ctx context.Context, fn func(repository.TxRepositories) error) error {
	calls := 0
	return r.store.Run(ctx, func(repos repository.TxRepositories) error {
		repos.Movements = failingMovements{InventoryMovementRepository: repos.Movements, calls: &calls, failAt: r.failAt}
		return fn(repos)
	})
}

func TestConfirm_FalloEnElLibroRevierteTodo(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.uc = sales.NewUseCase(failingRunner{store: f.store, failAt: 2}, f.repos.Sales, f.repos.Clients,
		f.repos.Products, f.repos.Payments, f.receipts, defaultOptions(), zerolog.Nop())
	f.receive(t, "P1", "5")
	f.receive(t, "P2", "5")
	s := f.draft(t, line("P1", "1"), line("P2", "1"))

	_, err := f.uc.Confirm(context.Background(), s.ID, vendedor)
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.ErrorIs(t, err, errDisk)

	got, err := f.uc.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusDraft, got.Status)
	assert.True(t, f.currentStock(t, "P1").Equal(d("5")), "la primera línea también se revierte")
	assert.True(t, f.currentStock(t, "P2").Equal(d("5")))
	assert.Empty(t, f.movementsOf(t, s.ID))
}

func TestConfirm_ConcurrentesNoVendenDeMas(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "3")
	a := f.draft(t, line("P1", "2"))
	b := f.draft(t, line("P1", "2"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.uc.Confirm(context.Background(), id, vendedor)
		}()
	}
	wg.Wait()

	ok, short := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			short++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)
	assert.True(t, f.currentStock(t, "P1").Equal(d("1")))
}

func TestCancel_VentaConfirmadaRepone(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "5")
	s := f.draft(t, line("P1", "2"))
	ctx := context.Background()
	_, err := f.uc.Confirm(ctx, s.ID, vendedor)
	require.NoError(t, err)

	out, err := f.uc.Cancel(ctx, s.ID, vendedor)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, out.Status)
	assert.Equal(t, entity.PaymentStatusCancelled, out.PaymentStatus)
	assert.NotNil(t, out.CancelledAt)
	assert.True(t, f.currentStock(t, "P1").Equal(d("5")))

	movs := f.movementsOf(t, s.ID)
	require.Len(t, movs, 2)
	ret := movs[1]
	assert.Equal(t, entity.MovementTypeReturn, ret.Type)
	assert.Equal(t, "Sale #"+s.ID+" cancelled", ret.Reason)
	assert.True(t, ret.Quantity.Equal(d("2")))
}

func TestCancel_SinReposicionConfigurada(t *testing.T) {
	opts := defaultOptions()
	opts.RestockOnCancel = false
	f := newFixture(t, opts, nil)
	f.receive(t, "P1", "5")
	s := f.draft(t, line("P1", "2"))
	ctx := context.Background()
	_, err := f.uc.Confirm(ctx, s.ID, vendedor)
	require.NoError(t, err)

	_, err = f.uc.Cancel(ctx, s.ID, vendedor)
	require.NoError(t, err)
	assert.True(t, f.currentStock(t, "P1").Equal(d("3")))
	assert.Len(t, f.movementsOf(t, s.ID), 1)
}

func TestCancel_BorradorNoTocaInventario(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "5")
	s := f.draft(t, line("P1", "2"))

	out, err := f.uc.Cancel(context.Background(), s.ID, vendedor)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, out.Status)
	assert.True(t, f.currentStock(t, "P1").Equal(d("5")))
	assert.Empty(t, f.movementsOf(t, s.ID))
}

func TestCancel_EstadosTerminales(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "5")
	ctx := context.Background()

	cancelled := f.draft(t, line("P1", "1"))
	_, err := f.uc.Cancel(ctx, cancelled.ID, vendedor)
	require.NoError(t, err)
	_, err = f.uc.Cancel(ctx, cancelled.ID, vendedor)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	completed := f.draft(t, line("P1", "1"))
	_, err = f.uc.Confirm(ctx, completed.ID, vendedor)
	require.NoError(t, err)
	_, err = f.uc.Advance(ctx, completed.ID, entity.SaleStatusCompleted)
	require.NoError(t, err)
	_, err = f.uc.Cancel(ctx, completed.ID, vendedor)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, f.currentStock(t, "P1").Equal(d("4")))
}

func TestAdvance_ProgresionDeCumplimiento(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "5")
	s := f.draft(t, line("P1", "1"))
	ctx := context.Background()

	_, err := f.uc.Advance(ctx, s.ID, entity.SaleStatusProcessing)
	require.ErrorIs(t, err, domain.ErrInvalidState, "un borrador no avanza")

	_, err = f.uc.Confirm(ctx, s.ID, vendedor)
	require.NoError(t, err)
	out, err := f.uc.Advance(ctx, s.ID, entity.SaleStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusProcessing, out.Status)

	out, err = f.uc.Advance(ctx, s.ID, entity.SaleStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, out.Status)

	_, err = f.uc.Advance(ctx, s.ID, entity.SaleStatusProcessing)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, f.currentStock(t, "P1").Equal(d("4")), "avanzar no toca inventario")
}

func TestReplaceItems_SoloEnBorrador(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "5")
	s := f.draft(t, line("P1", "1"))
	ctx := context.Background()

	out, err := f.uc.ReplaceItems(ctx, s.ID, []dto.SaleItemRequest{line("P2", "3")})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "P2", out.Items[0].ProductID)
	assert.True(t, out.Total.Equal(d("150")))

	got, err := f.uc.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "P2", got.Items[0].ProductID)

	_, err = f.uc.ReplaceItems(ctx, s.ID, []dto.SaleItemRequest{line("P1", "1")})
	require.NoError(t, err)
	_, err = f.uc.Confirm(ctx, s.ID, vendedor)
	require.NoError(t, err)
	_, err = f.uc.ReplaceItems(ctx, s.ID, []dto.SaleItemRequest{line("P1", "2")})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestLibro_SumaDeMovimientosIgualAlStock(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	ctx := context.Background()
	f.receive(t, "P1", "10")
	f.receive(t, "P2", "4")

	s1 := f.draft(t, line("P1", "3"), line("P2", "1"))
	s2 := f.draft(t, line("P1", "2"))
	s3 := f.draft(t, line("P2", "9"))
	_, err := f.uc.Confirm(ctx, s1.ID, vendedor)
	require.NoError(t, err)
	_, err = f.uc.Confirm(ctx, s2.ID, vendedor)
	require.NoError(t, err)
	_, err = f.uc.Confirm(ctx, s3.ID, vendedor)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	_, err = f.uc.Cancel(ctx, s1.ID, vendedor)
	require.NoError(t, err)

	for _, productID := range []string{"P1", "P2"} {
		movs, err := f.repos.Movements.List(ctx, repository.MovementFilter{ProductID: productID, Location: loja})
		require.NoError(t, err)
		sum := decimal.Zero
		for _, m := range movs {
			assert.True(t, m.NewStock.Sub(m.PreviousStock).Equal(m.Quantity))
			sum = sum.Add(m.Quantity)
		}
		assert.True(t, sum.Equal(f.currentStock(t, productID)), "producto %s", productID)
	}
	assert.True(t, f.currentStock(t, "P1").Equal(d("8")))
	assert.True(t, f.currentStock(t, "P2").Equal(d("4")))
}

func TestRegisterPayment_EvolucionaEstadoDePago(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	s := f.draft(t, line("P1", "2"))
	ctx := context.Background()

	_, err := f.uc.RegisterPayment(ctx, s.ID, vendedor, dto.RegisterPaymentRequest{Amount: d("50"), Method: entity.PaymentMethodPix})
	require.NoError(t, err)
	got, err := f.uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartial, got.PaymentStatus)
	assert.Equal(t, entity.SaleStatusDraft, got.Status, "el pago no confirma la venta")
	assert.Equal(t, entity.PaymentMethodPix, got.PaymentMethod)

	_, err = f.uc.RegisterPayment(ctx, s.ID, vendedor, dto.RegisterPaymentRequest{Amount: d("200"), Method: entity.PaymentMethodCash})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "excede el saldo")

	_, err = f.uc.RegisterPayment(ctx, s.ID, vendedor, dto.RegisterPaymentRequest{Amount: d("150"), Method: entity.PaymentMethodCash})
	require.NoError(t, err)
	got, err = f.uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, got.PaymentStatus)
	assert.True(t, got.PaidAmount.Equal(d("200")))

	payments, err := f.uc.ListPayments(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.True(t, payments[0].Amount.Equal(d("50")))
}

func TestRegisterPayment_Rechazos(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	s := f.draft(t, line("P1", "1"))
	ctx := context.Background()

	_, err := f.uc.RegisterPayment(ctx, s.ID, vendedor, dto.RegisterPaymentRequest{Amount: d("0"), Method: entity.PaymentMethodCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.RegisterPayment(ctx, s.ID, vendedor, dto.RegisterPaymentRequest{Amount: d("10"), Method: "cheque"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.RegisterPayment(ctx, "no-existe", vendedor, dto.RegisterPaymentRequest{Amount: d("10"), Method: entity.PaymentMethodCash})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Cancel(ctx, s.ID, vendedor)
	require.NoError(t, err)
	_, err = f.uc.RegisterPayment(ctx, s.ID, vendedor, dto.RegisterPaymentRequest{Amount: d("10"), Method: entity.PaymentMethodCash})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReceipt_SoloVentasConfirmadas(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "2")
	s := f.draft(t, line("P1", "1"))
	ctx := context.Background()

	_, _, err := f.uc.Receipt(ctx, s.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.uc.Confirm(ctx, s.ID, vendedor)
	require.NoError(t, err)
	pdf, name, err := f.uc.Receipt(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "comprovante-VD-000001.pdf", name)
	assert.Equal(t, "Ótica Centro", f.receipts.last.StoreName)
	assert.Equal(t, "Maria Souza", f.receipts.last.Client.Name)
	assert.Contains(t, f.receipts.last.Products, "P1")
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t, defaultOptions(), nil)
	f.receive(t, "P1", "5")
	a := f.draft(t, line("P1", "1"))
	f.draft(t, line("P1", "1"))
	ctx := context.Background()
	_, err := f.uc.Confirm(ctx, a.ID, vendedor)
	require.NoError(t, err)

	list, err := f.uc.List(ctx, dto.SaleQuery{Status: entity.SaleStatusConfirmed})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, a.ID, list.Items[0].ID)
	assert.Equal(t, 20, list.Page.Limit)
}
