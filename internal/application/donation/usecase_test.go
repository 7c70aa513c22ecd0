package donation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/donaciones-api/internal/application/catalog"
	"github.com/jhoicas/donaciones-api/internal/application/donation"
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type donationFixture struct {
	store     *memory.Store
	catalogUC *catalog.UseCase
	uc        *donation.UseCase
	donor     *entity.Donor
}

// newDonationFixture arma el pipeline completo sobre el backend en memoria,
// con un donante ya registrado.
func newDonationFixture(t *testing.T) *donationFixture {
	t.Helper()
	store := memory.NewStore()
	catalogUC := catalog.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewCategoryRepository(store),
		memory.NewProductRepository(store),
		memory.NewStockMovementRepository(store),
	)
	uc := donation.NewUseCase(
		memory.NewTxRunner(store),
		catalogUC,
		memory.NewDonationRepository(store),
		memory.NewDonorRepository(store),
	)

	donor := &entity.Donor{
		ID:    uuid.New().String(),
		Name:  "María Pérez",
		Email: "maria@example.com",
	}
	require.NoError(t, memory.NewDonorRepository(store).Create(donor))

	return &donationFixture{store: store, catalogUC: catalogUC, uc: uc, donor: donor}
}

// findProduct busca un producto del catálogo por nombre exacto.
func (f *donationFixture) findProduct(t *testing.T, name string) *entity.Product {
	t.Helper()
	products, err := f.catalogUC.ListProducts(100, 0)
	require.NoError(t, err)
	for _, p := range products {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("producto %q no encontrado en el catálogo", name)
	return nil
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register — validaciones y estado inicial
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_DonanteInexistente(t *testing.T) {
	f := newDonationFixture(t)

	_, err := f.uc.Register(context.Background(), donation.RegisterInput{
		DonorID: uuid.New().String(),
		Items:   []donation.ItemInput{{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_SinItems(t *testing.T) {
	f := newDonationFixture(t)

	_, err := f.uc.Register(context.Background(), donation.RegisterInput{DonorID: f.donor.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EfectivoSinMonto(t *testing.T) {
	f := newDonationFixture(t)

	_, err := f.uc.Register(context.Background(), donation.RegisterInput{
		DonorID: f.donor.ID,
		Items:   []donation.ItemInput{{CategoryLabel: "cash", Description: "aporte"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un item de efectivo requiere monto positivo")
}

func TestRegister_BienesSinCantidad(t *testing.T) {
	f := newDonationFixture(t)

	_, err := f.uc.Register(context.Background(), donation.RegisterInput{
		DonorID: f.donor.ID,
		Items:   []donation.ItemInput{{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_DerivaTipoYTotal(t *testing.T) {
	f := newDonationFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		items    []donation.ItemInput
		wantKind string
	}{
		{
			name:     "solo bienes",
			items:    []donation.ItemInput{{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 3}},
			wantKind: entity.DonationKindGoods,
		},
		{
			name:     "solo efectivo",
			items:    []donation.ItemInput{{CategoryLabel: "cash", Description: "aporte", CashAmount: money("50000")}},
			wantKind: entity.DonationKindCash,
		},
		{
			name: "mixta",
			items: []donation.ItemInput{
				{CategoryLabel: "Alimentos", Description: "arroz 1kg", Quantity: 2},
				{CategoryLabel: "cash", Description: "aporte", CashAmount: money("20000")},
			},
			wantKind: entity.DonationKindMixed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := f.uc.Register(ctx, donation.RegisterInput{DonorID: f.donor.ID, Items: tc.items})
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, d.Kind)
			assert.Equal(t, entity.DonationStatusPending, d.Status, "toda donación nace pendiente")
		})
	}
}

func TestRegister_NoTocaElCatalogo(t *testing.T) {
	f := newDonationFixture(t)

	_, err := f.uc.Register(context.Background(), donation.RegisterInput{
		DonorID: f.donor.ID,
		Items:   []donation.ItemInput{{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 5}},
	})
	require.NoError(t, err)

	products, err := f.catalogUC.ListProducts(100, 0)
	require.NoError(t, err)
	assert.Empty(t, products, "registrar no debe crear productos ni stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Process — conversión a stock exactamente una vez
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_ConvierteItemsEnStock(t *testing.T) {
	f := newDonationFixture(t)
	ctx := context.Background()

	d, err := f.uc.Register(ctx, donation.RegisterInput{
		DonorID: f.donor.ID,
		Items: []donation.ItemInput{
			{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 5},
			{CategoryLabel: "cash", Description: "aporte", CashAmount: money("10000")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Process(ctx, d.ID, "tester"))

	// El producto se creó bajo la categoría resuelta y recibió el stock.
	product := f.findProduct(t, "camiseta")
	assert.Equal(t, 5, product.StockQuantity)

	// Un solo movimiento IN, referenciando la donación; el efectivo no genera stock.
	movements, err := f.catalogUC.ListMovementsByReference(d.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementTypeIN, movements[0].Type)
	assert.Equal(t, 5, movements[0].Quantity)
	assert.Equal(t, 0, movements[0].QuantityBefore)
	assert.Equal(t, 5, movements[0].QuantityAfter)
	assert.Equal(t, entity.ReferenceKindDonation, movements[0].ReferenceKind)

	got, err := f.uc.GetByID(d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DonationStatusProcessed, got.Status)
	assert.NotNil(t, got.ProcessedAt)
	assert.Equal(t, "tester", got.ProcessedBy)
}

func TestProcess_SumaSobreStockExistente(t *testing.T) {
	f := newDonationFixture(t)
	ctx := context.Background()

	// Dos donaciones con el mismo item deben acumular sobre el mismo producto.
	for i := 0; i < 2; i++ {
		d, err := f.uc.Register(ctx, donation.RegisterInput{
			DonorID: f.donor.ID,
			Items:   []donation.ItemInput{{CategoryLabel: "Alimentos", Description: "arroz 1kg", Quantity: 3}},
		})
		require.NoError(t, err)
		require.NoError(t, f.uc.Process(ctx, d.ID, "tester"))
	}

	product := f.findProduct(t, "arroz 1kg")
	assert.Equal(t, 6, product.StockQuantity, "el segundo procesamiento acumula, no reemplaza")

	categories, err := f.catalogUC.ListCategories(100, 0)
	require.NoError(t, err)
	assert.Len(t, categories, 1, "la categoría se reutiliza entre donaciones")
}

func TestProcess_DobleProcesamientoFalla(t *testing.T) {
	f := newDonationFixture(t)
	ctx := context.Background()

	d, err := f.uc.Register(ctx, donation.RegisterInput{
		DonorID: f.donor.ID,
		Items:   []donation.ItemInput{{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 5}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Process(ctx, d.ID, "tester"))

	err = f.uc.Process(ctx, d.ID, "tester")
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	// La reintentada no debe duplicar stock ni movimientos.
	product := f.findProduct(t, "camiseta")
	assert.Equal(t, 5, product.StockQuantity)
	movements, err := f.catalogUC.ListMovementsByReference(d.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 1)
}

func TestProcess_DonacionInexistente(t *testing.T) {
	f := newDonationFixture(t)

	err := f.uc.Process(context.Background(), uuid.New().String(), "tester")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Cancel — reversa completa o nada
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_PendienteEliminaSinMovimientos(t *testing.T) {
	f := newDonationFixture(t)
	ctx := context.Background()

	d, err := f.uc.Register(ctx, donation.RegisterInput{
		DonorID: f.donor.ID,
		Items:   []donation.ItemInput{{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 5}},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Cancel(ctx, d.ID, "tester"))

	_, err = f.uc.GetByID(d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	movements, err := f.catalogUC.ListMovementsByReference(d.ID)
	require.NoError(t, err)
	assert.Empty(t, movements, "cancelar una pendiente no debe tocar el libro")
}

func TestCancel_ProcesadaEmiteReversaYConservaTraza(t *testing.T) {
	f := newDonationFixture(t)
	ctx := context.Background()

	d, err := f.uc.Register(ctx, donation.RegisterInput{
		DonorID: f.donor.ID,
		Items:   []donation.ItemInput{{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 5}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Process(ctx, d.ID, "tester"))

	require.NoError(t, f.uc.Cancel(ctx, d.ID, "tester"))

	// El stock vuelve a cero pero el producto permanece en el catálogo.
	product := f.findProduct(t, "camiseta")
	assert.Equal(t, 0, product.StockQuantity)

	// El libro conserva la entrada original y la salida compensatoria.
	movements, err := f.catalogUC.ListMovementsByReference(d.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2, "la reversa se registra, nunca se borra historia")
	types := []string{movements[0].Type, movements[1].Type}
	assert.Contains(t, types, entity.MovementTypeIN)
	assert.Contains(t, types, entity.MovementTypeOUT)

	_, err = f.uc.GetByID(d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_AbortaSiElStockYaFueConsumido(t *testing.T) {
	f := newDonationFixture(t)
	ctx := context.Background()

	d, err := f.uc.Register(ctx, donation.RegisterInput{
		DonorID: f.donor.ID,
		Items:   []donation.ItemInput{{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 5}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Process(ctx, d.ID, "tester"))

	// Parte del stock donado ya salió por otra vía: la reversa completa no alcanza.
	product := f.findProduct(t, "camiseta")
	_, err = f.catalogUC.Adjust(ctx, product.ID, entity.MovementTypeOUT, 3, "entrega externa", "tester")
	require.NoError(t, err)

	err = f.uc.Cancel(ctx, d.ID, "tester")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var detail *domain.InsufficientStockError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, 5, detail.Requested)
	assert.Equal(t, 2, detail.Available)

	// Rollback total: la donación sigue procesada y el stock no cambió.
	got, err := f.uc.GetByID(d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DonationStatusProcessed, got.Status, "la cancelación fallida no debe dejar estados a medias")

	product = f.findProduct(t, "camiseta")
	assert.Equal(t, 2, product.StockQuantity)

	movements, err := f.catalogUC.ListMovementsByReference(d.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 1, "la salida compensatoria abortada no debe quedar en el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestListByDonor_FiltraPorDonante(t *testing.T) {
	f := newDonationFixture(t)
	ctx := context.Background()

	otro := &entity.Donor{ID: uuid.New().String(), Name: "Carlos Gómez"}
	require.NoError(t, memory.NewDonorRepository(f.store).Create(otro))

	_, err := f.uc.Register(ctx, donation.RegisterInput{
		DonorID: f.donor.ID,
		Items:   []donation.ItemInput{{CategoryLabel: "Ropa", Description: "camiseta", Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = f.uc.Register(ctx, donation.RegisterInput{
		DonorID: otro.ID,
		Items:   []donation.ItemInput{{CategoryLabel: "Ropa", Description: "pantalón", Quantity: 1}},
	})
	require.NoError(t, err)

	list, err := f.uc.ListByDonor(f.donor.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.donor.ID, list[0].DonorID)

	all, err := f.uc.List(10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
