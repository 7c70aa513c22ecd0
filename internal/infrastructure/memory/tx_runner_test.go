package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
	"github.com/jhoicas/donaciones-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, store *memory.Store, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:            uuid.New().String(),
		CategoryID:    uuid.New().String(),
		Name:          "arroz 1kg",
		StockQuantity: stock,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, memory.NewProductRepository(store).Create(p))
	return p
}

func TestTxRunner_CommitPersisteEscrituras(t *testing.T) {
	store := memory.NewStore()
	product := seedProduct(t, store, 5)

	err := memory.NewTxRunner(store).Run(context.Background(), func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.UpdateStock(product.ID, 8); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Type:          entity.MovementTypeIN,
			Quantity:      3,
			ReferenceKind: entity.ReferenceKindAdjustment,
			CreatedAt:     time.Now(),
		})
	})
	require.NoError(t, err)

	got, err := memory.NewProductRepository(store).GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.StockQuantity)

	sum, err := memory.NewStockMovementRepository(store).SumByProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sum)
}

func TestTxRunner_ErrorRestauraElEstadoCompleto(t *testing.T) {
	store := memory.NewStore()
	product := seedProduct(t, store, 5)
	boom := errors.New("fallo a mitad de transacción")

	err := memory.NewTxRunner(store).Run(context.Background(), func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.UpdateStock(product.ID, 0); err != nil {
			return err
		}
		if err := movRepo.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Type:          entity.MovementTypeOUT,
			Quantity:      5,
			ReferenceKind: entity.ReferenceKindAdjustment,
			CreatedAt:     time.Now(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Ni el contador ni el libro deben conservar las escrituras revertidas.
	got, err := memory.NewProductRepository(store).GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.StockQuantity)

	movements, err := memory.NewStockMovementRepository(store).ListByProduct(product.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestTxRunner_RollbackCubreTodasLasColecciones(t *testing.T) {
	store := memory.NewStore()
	boom := errors.New("abortar")

	beneficiary := &entity.Beneficiary{
		ID:           uuid.New().String(),
		Name:         "Familia Rodríguez",
		MonthlyLimit: 10,
		Status:       entity.BeneficiaryStatusActive,
	}
	require.NoError(t, memory.NewBeneficiaryRepository(store).Create(beneficiary))

	err := memory.NewTxRunner(store).RunDistribution(context.Background(), func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		distributionRepo repository.DistributionRepository,
		beneficiaryRepo repository.BeneficiaryRepository,
	) error {
		d := &entity.Distribution{
			ID:            uuid.New().String(),
			BeneficiaryID: beneficiary.ID,
			Date:          time.Now(),
			Status:        entity.DistributionStatusCompleted,
			CreatedAt:     time.Now(),
		}
		if err := distributionRepo.Create(d); err != nil {
			return err
		}
		if err := beneficiaryRepo.UpdateUsed(beneficiary.ID, 7); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := memory.NewDistributionRepository(store).List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "la cabecera creada en la transacción fallida no debe sobrevivir")

	got, err := memory.NewBeneficiaryRepository(store).GetByID(beneficiary.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UsedThisPeriod, "el contador de cuota vuelve al valor previo")
}

func TestRepos_DevuelvenCopiasIndependientes(t *testing.T) {
	store := memory.NewStore()
	product := seedProduct(t, store, 5)
	repo := memory.NewProductRepository(store)

	got, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	got.StockQuantity = 999

	again, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, again.StockQuantity, "mutar lo devuelto no debe tocar el store")
}
