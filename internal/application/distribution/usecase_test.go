package distribution_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/donaciones-api/internal/application/catalog"
	"github.com/jhoicas/donaciones-api/internal/application/distribution"
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type distributionFixture struct {
	store     *memory.Store
	catalogUC *catalog.UseCase
	uc        *distribution.UseCase
}

func newDistributionFixture(t *testing.T) *distributionFixture {
	t.Helper()
	store := memory.NewStore()
	catalogUC := catalog.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewCategoryRepository(store),
		memory.NewProductRepository(store),
		memory.NewStockMovementRepository(store),
	)
	uc := distribution.NewUseCase(
		memory.NewTxRunner(store),
		catalogUC,
		memory.NewDistributionRepository(store),
		memory.NewBeneficiaryRepository(store),
	)
	return &distributionFixture{store: store, catalogUC: catalogUC, uc: uc}
}

// seedBeneficiary registra un beneficiario activo con el límite mensual dado.
func (f *distributionFixture) seedBeneficiary(t *testing.T, monthlyLimit int) *entity.Beneficiary {
	t.Helper()
	b := &entity.Beneficiary{
		ID:           uuid.New().String(),
		Name:         "Familia Rodríguez",
		FamilySize:   4,
		MonthlyLimit: monthlyLimit,
		Status:       entity.BeneficiaryStatusActive,
	}
	require.NoError(t, memory.NewBeneficiaryRepository(f.store).Create(b))
	return b
}

// seedProduct crea un producto con stock inicial vía ajuste IN.
func (f *distributionFixture) seedProduct(t *testing.T, name string, stock int) *entity.Product {
	t.Helper()
	category, err := f.catalogUC.ResolveOrCreateCategory("Alimentos")
	require.NoError(t, err)
	product, err := f.catalogUC.FindOrCreateProduct(category.ID, name)
	require.NoError(t, err)
	if stock > 0 {
		_, err = f.catalogUC.Adjust(context.Background(), product.ID, entity.MovementTypeIN, stock, "carga inicial", "tester")
		require.NoError(t, err)
	}
	product, err = f.catalogUC.GetProduct(product.ID)
	require.NoError(t, err)
	return product
}

func (f *distributionFixture) stockOf(t *testing.T, productID string) int {
	t.Helper()
	product, err := f.catalogUC.GetProduct(productID)
	require.NoError(t, err)
	return product.StockQuantity
}

func (f *distributionFixture) usedOf(t *testing.T, beneficiaryID string) int {
	t.Helper()
	b, err := memory.NewBeneficiaryRepository(f.store).GetByID(beneficiaryID)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b.UsedThisPeriod
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register — stock y cuota en una sola transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_ConsumeStockYCuota(t *testing.T) {
	f := newDistributionFixture(t)
	ctx := context.Background()
	b := f.seedBeneficiary(t, 10)
	product := f.seedProduct(t, "arroz 1kg", 8)

	d, err := f.uc.Register(ctx, distribution.RegisterInput{
		BeneficiaryID: b.ID,
		Items:         []distribution.ItemInput{{ProductID: product.ID, Quantity: 3}},
		ActorID:       "tester",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DistributionStatusCompleted, d.Status, "no existe estado pendiente en entregas")

	assert.Equal(t, 5, f.stockOf(t, product.ID))
	assert.Equal(t, 3, f.usedOf(t, b.ID))

	movements, err := f.catalogUC.ListMovementsByReference(d.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementTypeOUT, movements[0].Type)
	assert.Equal(t, entity.ReferenceKindDistribution, movements[0].ReferenceKind)
	assert.Equal(t, 8, movements[0].QuantityBefore)
	assert.Equal(t, 5, movements[0].QuantityAfter)
}

func TestRegister_CuotaExactaPermitida(t *testing.T) {
	f := newDistributionFixture(t)
	ctx := context.Background()
	b := f.seedBeneficiary(t, 5)
	product := f.seedProduct(t, "arroz 1kg", 20)

	// Consumir exactamente el límite debe pasar.
	_, err := f.uc.Register(ctx, distribution.RegisterInput{
		BeneficiaryID: b.ID,
		Items:         []distribution.ItemInput{{ProductID: product.ID, Quantity: 5}},
		ActorID:       "tester",
	})
	require.NoError(t, err)

	quota, err := f.uc.GetBeneficiaryQuota(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, quota.Used)
	assert.Equal(t, 0, quota.Remaining)
}

func TestRegister_CuotaExcedidaSinEfectos(t *testing.T) {
	f := newDistributionFixture(t)
	ctx := context.Background()
	b := f.seedBeneficiary(t, 5)
	product := f.seedProduct(t, "arroz 1kg", 20)

	_, err := f.uc.Register(ctx, distribution.RegisterInput{
		BeneficiaryID: b.ID,
		Items:         []distribution.ItemInput{{ProductID: product.ID, Quantity: 3}},
		ActorID:       "tester",
	})
	require.NoError(t, err)

	// 3 usadas + 3 solicitadas > 5: rechazo con detalle de saldo.
	_, err = f.uc.Register(ctx, distribution.RegisterInput{
		BeneficiaryID: b.ID,
		Items:         []distribution.ItemInput{{ProductID: product.ID, Quantity: 3}},
		ActorID:       "tester",
	})
	require.ErrorIs(t, err, domain.ErrQuotaExceeded)

	var detail *domain.QuotaExceededError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, 3, detail.Requested)
	assert.Equal(t, 2, detail.Remaining)
	assert.Equal(t, 5, detail.MonthlyLimit)

	// Cero efectos parciales: ni stock, ni contador, ni registros nuevos.
	assert.Equal(t, 17, f.stockOf(t, product.ID))
	assert.Equal(t, 3, f.usedOf(t, b.ID))
	list, err := f.uc.ListByBeneficiary(b.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegister_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newDistributionFixture(t)
	ctx := context.Background()
	b := f.seedBeneficiary(t, 20)
	conStock := f.seedProduct(t, "arroz 1kg", 10)
	sinStock := f.seedProduct(t, "aceite 1L", 1)

	// El primer item alcanza; el segundo no: la transacción entera revierte.
	_, err := f.uc.Register(ctx, distribution.RegisterInput{
		BeneficiaryID: b.ID,
		Items: []distribution.ItemInput{
			{ProductID: conStock.ID, Quantity: 4},
			{ProductID: sinStock.ID, Quantity: 3},
		},
		ActorID: "tester",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, f.stockOf(t, conStock.ID), "la salida del primer item debe revertirse")
	assert.Equal(t, 1, f.stockOf(t, sinStock.ID))
	assert.Equal(t, 0, f.usedOf(t, b.ID), "la cuota no debe consumirse en un registro fallido")

	list, err := f.uc.ListByBeneficiary(b.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "no deben quedar registros de la entrega fallida")
}

func TestRegister_BeneficiarioInactivo(t *testing.T) {
	f := newDistributionFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, "arroz 1kg", 10)

	b := &entity.Beneficiary{
		ID:           uuid.New().String(),
		Name:         "Familia García",
		MonthlyLimit: 10,
		Status:       entity.BeneficiaryStatusInactive,
	}
	require.NoError(t, memory.NewBeneficiaryRepository(f.store).Create(b))

	_, err := f.uc.Register(ctx, distribution.RegisterInput{
		BeneficiaryID: b.ID,
		Items:         []distribution.ItemInput{{ProductID: product.ID, Quantity: 1}},
		ActorID:       "tester",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_BeneficiarioInexistente(t *testing.T) {
	f := newDistributionFixture(t)
	product := f.seedProduct(t, "arroz 1kg", 10)

	_, err := f.uc.Register(context.Background(), distribution.RegisterInput{
		BeneficiaryID: uuid.New().String(),
		Items:         []distribution.ItemInput{{ProductID: product.ID, Quantity: 1}},
		ActorID:       "tester",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	f := newDistributionFixture(t)
	b := f.seedBeneficiary(t, 10)

	cases := []struct {
		name  string
		input distribution.RegisterInput
	}{
		{"sin beneficiario", distribution.RegisterInput{Items: []distribution.ItemInput{{ProductID: "x", Quantity: 1}}}},
		{"sin items", distribution.RegisterInput{BeneficiaryID: b.ID}},
		{"cantidad cero", distribution.RegisterInput{BeneficiaryID: b.ID, Items: []distribution.ItemInput{{ProductID: "x", Quantity: 0}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Register(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Cancel — reversa de stock y cuota
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_RestauraStockYCuota(t *testing.T) {
	f := newDistributionFixture(t)
	ctx := context.Background()
	b := f.seedBeneficiary(t, 10)
	product := f.seedProduct(t, "arroz 1kg", 8)

	d, err := f.uc.Register(ctx, distribution.RegisterInput{
		BeneficiaryID: b.ID,
		Items:         []distribution.ItemInput{{ProductID: product.ID, Quantity: 3}},
		ActorID:       "tester",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Cancel(ctx, d.ID, "tester"))

	assert.Equal(t, 8, f.stockOf(t, product.ID), "el stock entregado vuelve al inventario")
	assert.Equal(t, 0, f.usedOf(t, b.ID), "la cuota consumida se libera")

	_, err = f.uc.GetByID(d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El libro conserva la salida original y la entrada compensatoria.
	movements, err := f.catalogUC.ListMovementsByReference(d.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	types := []string{movements[0].Type, movements[1].Type}
	assert.Contains(t, types, entity.MovementTypeOUT)
	assert.Contains(t, types, entity.MovementTypeIN)
}

func TestCancel_ContadorConPisoEnCero(t *testing.T) {
	f := newDistributionFixture(t)
	ctx := context.Background()
	b := f.seedBeneficiary(t, 10)
	product := f.seedProduct(t, "arroz 1kg", 8)

	d, err := f.uc.Register(ctx, distribution.RegisterInput{
		BeneficiaryID: b.ID,
		Items:         []distribution.ItemInput{{ProductID: product.ID, Quantity: 3}},
		ActorID:       "tester",
	})
	require.NoError(t, err)

	// Contador corrupto por debajo de lo entregado: la reversa no debe dejarlo negativo.
	require.NoError(t, memory.NewBeneficiaryRepository(f.store).UpdateUsed(b.ID, 1))

	require.NoError(t, f.uc.Cancel(ctx, d.ID, "tester"))
	assert.Equal(t, 0, f.usedOf(t, b.ID))
}

func TestCancel_DistribucionInexistente(t *testing.T) {
	f := newDistributionFixture(t)

	err := f.uc.Cancel(context.Background(), uuid.New().String(), "tester")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetBeneficiaryQuota — saldo calculado en vivo
// ──────────────────────────────────────────────────────────────────────────────

func TestGetBeneficiaryQuota_CalculaDesdeElHistorial(t *testing.T) {
	f := newDistributionFixture(t)
	ctx := context.Background()
	b := f.seedBeneficiary(t, 10)
	product := f.seedProduct(t, "arroz 1kg", 20)

	quota, err := f.uc.GetBeneficiaryQuota(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, quota.MonthlyLimit)
	assert.Equal(t, 0, quota.Used)
	assert.Equal(t, 10, quota.Remaining)

	for _, qty := range []int{2, 3} {
		_, err := f.uc.Register(ctx, distribution.RegisterInput{
			BeneficiaryID: b.ID,
			Items:         []distribution.ItemInput{{ProductID: product.ID, Quantity: qty}},
			ActorID:       "tester",
		})
		require.NoError(t, err)
	}

	quota, err = f.uc.GetBeneficiaryQuota(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, quota.Used, "el uso se suma sobre las entregas del mes en curso")
	assert.Equal(t, 5, quota.Remaining)
}

func TestGetBeneficiaryQuota_BeneficiarioInexistente(t *testing.T) {
	f := newDistributionFixture(t)

	_, err := f.uc.GetBeneficiaryQuota(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
