package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/donaciones-api/internal/application/catalog"
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newCatalogUC construye el caso de uso del catálogo sobre el backend en memoria.
func newCatalogUC(t *testing.T) *catalog.UseCase {
	t.Helper()
	store := memory.NewStore()
	return catalog.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewCategoryRepository(store),
		memory.NewProductRepository(store),
		memory.NewStockMovementRepository(store),
	)
}

// seedProduct crea categoría + producto con el stock inicial indicado vía un
// ajuste IN, para que el libro y el contador queden consistentes.
func seedProduct(t *testing.T, uc *catalog.UseCase, categoryLabel, name string, stock int) *entity.Product {
	t.Helper()
	category, err := uc.ResolveOrCreateCategory(categoryLabel)
	require.NoError(t, err)

	product, err := uc.FindOrCreateProduct(category.ID, name)
	require.NoError(t, err)
	if stock > 0 {
		_, err = uc.Adjust(context.Background(), product.ID, entity.MovementTypeIN, stock, "carga inicial", "tester")
		require.NoError(t, err)
	}
	product, err = uc.GetProduct(product.ID)
	require.NoError(t, err)
	return product
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ResolveOrCreateCategory — resolución idempotente
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveOrCreateCategory_IdempotentePorNormalizacion(t *testing.T) {
	uc := newCatalogUC(t)

	first, err := uc.ResolveOrCreateCategory("Ropa")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, "Ropa", first.Name, "conserva la forma original de la etiqueta")
	assert.Equal(t, "ropa", first.NormalizedName)

	// Variantes de la misma etiqueta deben resolver a la MISMA categoría.
	for _, variant := range []string{"ropa", " ROPA ", "RoPa"} {
		got, err := uc.ResolveOrCreateCategory(variant)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID, "%q debe resolver a la categoría ya creada", variant)
	}

	categories, err := uc.ListCategories(100, 0)
	require.NoError(t, err)
	assert.Len(t, categories, 1, "no deben crearse categorías duplicadas")
}

func TestResolveOrCreateCategory_AcentosResuelvenIgual(t *testing.T) {
	uc := newCatalogUC(t)

	conAcento, err := uc.ResolveOrCreateCategory("Alimentación")
	require.NoError(t, err)
	sinAcento, err := uc.ResolveOrCreateCategory("alimentacion")
	require.NoError(t, err)

	assert.Equal(t, conAcento.ID, sinAcento.ID)
}

func TestResolveOrCreateCategory_EtiquetaVacia(t *testing.T) {
	uc := newCatalogUC(t)

	_, err := uc.ResolveOrCreateCategory("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Adjust / ApplyMovement — libro append-only y contador materializado
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_EntradaActualizaStockYLibro(t *testing.T) {
	uc := newCatalogUC(t)
	product := seedProduct(t, uc, "Alimentos", "arroz 1kg", 0)

	movement, err := uc.Adjust(context.Background(), product.ID, entity.MovementTypeIN, 10, "conteo físico", "tester")
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeIN, movement.Type)
	assert.Equal(t, 10, movement.Quantity)
	assert.Equal(t, 0, movement.QuantityBefore, "before debe ser el stock previo")
	assert.Equal(t, 10, movement.QuantityAfter, "after debe ser el stock resultante")
	assert.Equal(t, entity.ReferenceKindAdjustment, movement.ReferenceKind)

	got, err := uc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQuantity, "el contador materializado debe reflejar el movimiento")

	history, err := uc.ListMovementsByProduct(product.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, movement.ID, history[0].ID)
}

func TestAdjust_SalidaInsuficienteRechazada(t *testing.T) {
	uc := newCatalogUC(t)
	product := seedProduct(t, uc, "Alimentos", "lentejas 500g", 3)

	_, err := uc.Adjust(context.Background(), product.ID, entity.MovementTypeOUT, 5, "merma", "tester")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "debe mapear al sentinel de stock insuficiente")

	var insuff *domain.InsufficientStockError
	require.True(t, errors.As(err, &insuff), "debe exponer el detalle tipado")
	assert.Equal(t, 5, insuff.Requested)
	assert.Equal(t, 3, insuff.Available)

	// Cero efectos: ni el contador ni el libro deben cambiar.
	got, err := uc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQuantity)

	history, err := uc.ListMovementsByProduct(product.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1, "solo la carga inicial debe estar en el libro")
}

func TestAdjust_SalidaHastaCeroPermitida(t *testing.T) {
	uc := newCatalogUC(t)
	product := seedProduct(t, uc, "Alimentos", "aceite 1L", 4)

	movement, err := uc.Adjust(context.Background(), product.ID, entity.MovementTypeOUT, 4, "entrega externa", "tester")
	require.NoError(t, err, "vaciar el stock exactamente a cero es válido")
	assert.Equal(t, 0, movement.QuantityAfter)
}

func TestAdjust_EntradasInvalidas(t *testing.T) {
	uc := newCatalogUC(t)
	product := seedProduct(t, uc, "Alimentos", "azúcar 1kg", 2)

	_, err := uc.Adjust(context.Background(), product.ID, entity.MovementTypeIN, 0, "x", "tester")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero es inválida")

	_, err = uc.Adjust(context.Background(), product.ID, entity.MovementTypeIN, -3, "x", "tester")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa es inválida")

	_, err = uc.Adjust(context.Background(), product.ID, "TRANSFER", 1, "x", "tester")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido es inválido")

	_, err = uc.Adjust(context.Background(), uuid.New().String(), entity.MovementTypeIN, 1, "x", "tester")
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

func TestListBelowMinimum(t *testing.T) {
	uc := newCatalogUC(t)
	low := seedProduct(t, uc, "Ropa", "bufanda", 2)    // min por defecto 5
	seedProduct(t, uc, "Ropa", "chaqueta", 20)

	products, err := uc.ListBelowMinimum()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
	assert.True(t, products[0].BelowMinimum())
}

// El historial sale más reciente primero y respeta la paginación.
func TestListMovementsByProduct_OrdenYPaginacion(t *testing.T) {
	uc := newCatalogUC(t)
	product := seedProduct(t, uc, "Alimentos", "harina 1kg", 0)

	for i := 1; i <= 3; i++ {
		_, err := uc.Adjust(context.Background(), product.ID, entity.MovementTypeIN, i, "carga", "tester")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	history, err := uc.ListMovementsByProduct(product.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 3, history[0].Quantity, "el movimiento más reciente va primero")
	assert.Equal(t, 2, history[1].Quantity)

	rest, err := uc.ListMovementsByProduct(product.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, 1, rest[0].Quantity)
}
