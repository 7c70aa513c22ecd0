package distribution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/donaciones-api/internal/application/catalog"
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
	"github.com/jhoicas/donaciones-api/pkg/metrics"
)

// Razones estampadas en los movimientos generados por el pipeline.
const (
	ReasonDistribution = "distribución"
	ReasonCancelled    = "distribución cancelada"
)

// UseCase pipeline de distribución: entrega stock a beneficiarios con cuota
// mensual, y cancela entregas con reversa completa de stock y cuota.
type UseCase struct {
	txRunner         TxRunner
	catalog          *catalog.UseCase
	distributionRepo repository.DistributionRepository
	beneficiaryRepo  repository.BeneficiaryRepository
}

// NewUseCase construye el pipeline de distribución.
func NewUseCase(
	txRunner TxRunner,
	catalogUC *catalog.UseCase,
	distributionRepo repository.DistributionRepository,
	beneficiaryRepo repository.BeneficiaryRepository,
) *UseCase {
	return &UseCase{
		txRunner:         txRunner,
		catalog:          catalogUC,
		distributionRepo: distributionRepo,
		beneficiaryRepo:  beneficiaryRepo,
	}
}

// ItemInput un renglón de la entrega.
type ItemInput struct {
	ProductID string
	Quantity  int // > 0, ≤ stock actual del producto
}

// RegisterInput entrada para registrar una distribución.
type RegisterInput struct {
	BeneficiaryID string
	Date          time.Time
	Items         []ItemInput
	Notes         string
	TotalValue    *decimal.Decimal
	ActorID       string
}

// QuotaInfo saldo de cuota de un beneficiario en el período actual.
type QuotaInfo struct {
	BeneficiaryID string
	MonthlyLimit  int
	Used          int
	Remaining     int
}

// Register registra una entrega ya ejecutada (no hay estado pendiente).
// En una sola transacción: bloquea la fila del beneficiario, verifica la
// cuota del mes calendario en curso, persiste cabecera + items, aplica una
// salida de stock por item y actualiza el contador de cuota. Cualquier fallo
// (stock insuficiente incluido) revierte todo: cero efectos parciales.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*entity.Distribution, error) {
	if in.BeneficiaryID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	totalRequested := 0
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		totalRequested += it.Quantity
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	d := &entity.Distribution{
		ID:            uuid.New().String(),
		BeneficiaryID: in.BeneficiaryID,
		Date:          date,
		Status:        entity.DistributionStatusCompleted,
		Notes:         in.Notes,
		TotalValue:    in.TotalValue,
		CreatedAt:     now,
		CreatedBy:     in.ActorID,
	}

	err := uc.txRunner.RunDistribution(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		distributionRepo repository.DistributionRepository,
		beneficiaryRepo repository.BeneficiaryRepository,
	) error {
		// Bloquea al beneficiario primero: dos registros concurrentes contra la
		// misma cuota se serializan aquí.
		b, err := beneficiaryRepo.GetForUpdate(in.BeneficiaryID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if b.Status != entity.BeneficiaryStatusActive {
			return domain.ErrInvalidInput
		}

		// Cuota del mes calendario en curso, calculada en vivo desde el
		// historial: no hay job de reseteo del contador.
		start, end := domain.MonthRange(now)
		used, err := distributionRepo.SumQuantityByBeneficiary(b.ID, start, end)
		if err != nil {
			return err
		}
		if used+totalRequested > b.MonthlyLimit {
			metrics.RejectionsTotal.WithLabelValues("quota_exceeded").Inc()
			return &domain.QuotaExceededError{
				BeneficiaryID: b.ID,
				Requested:     totalRequested,
				Remaining:     b.MonthlyLimit - used,
				MonthlyLimit:  b.MonthlyLimit,
			}
		}

		if err := distributionRepo.Create(d); err != nil {
			return err
		}
		for _, it := range in.Items {
			item := &entity.DistributionItem{
				ID:             uuid.New().String(),
				DistributionID: d.ID,
				ProductID:      it.ProductID,
				Quantity:       it.Quantity,
			}
			if err := distributionRepo.CreateItem(item); err != nil {
				return err
			}
			// La verificación de suficiencia y el bloqueo por producto viven en
			// ApplyMovementInTx; un InsufficientStock aborta la transacción entera.
			if _, err := uc.catalog.ApplyMovementInTx(movRepo, productRepo, catalog.MovementInput{
				ProductID:     it.ProductID,
				Type:          entity.MovementTypeOUT,
				Quantity:      it.Quantity,
				Reason:        ReasonDistribution,
				ReferenceID:   d.ID,
				ReferenceKind: entity.ReferenceKindDistribution,
				ActorID:       in.ActorID,
			}); err != nil {
				return err
			}
		}
		return beneficiaryRepo.UpdateUsed(b.ID, used+totalRequested)
	})
	if err != nil {
		return nil, err
	}
	metrics.DistributionsTotal.Inc()
	return d, nil
}

// Cancel deshace una entrega completa: una entrada compensatoria por item
// (hacia stock siempre es aditiva, no puede fallar por suficiencia), el
// contador de cuota decrementado con piso en cero, y los registros de la
// distribución eliminados. El libro conserva la traza de la reversa.
func (uc *UseCase) Cancel(ctx context.Context, distributionID, actorID string) error {
	err := uc.txRunner.RunDistribution(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		distributionRepo repository.DistributionRepository,
		beneficiaryRepo repository.BeneficiaryRepository,
	) error {
		d, err := distributionRepo.GetByID(distributionID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		b, err := beneficiaryRepo.GetForUpdate(d.BeneficiaryID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		items, err := distributionRepo.ListItems(d.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if _, err := uc.catalog.ApplyMovementInTx(movRepo, productRepo, catalog.MovementInput{
				ProductID:     item.ProductID,
				Type:          entity.MovementTypeIN,
				Quantity:      item.Quantity,
				Reason:        ReasonCancelled,
				ReferenceID:   d.ID,
				ReferenceKind: entity.ReferenceKindDistribution,
				ActorID:       actorID,
			}); err != nil {
				return err
			}
		}
		newUsed := b.UsedThisPeriod - entity.TotalQuantity(items)
		if newUsed < 0 {
			newUsed = 0
		}
		if err := beneficiaryRepo.UpdateUsed(b.ID, newUsed); err != nil {
			return err
		}
		if err := distributionRepo.DeleteItems(d.ID); err != nil {
			return err
		}
		return distributionRepo.Delete(d.ID)
	})
	if err != nil {
		return err
	}
	metrics.DistributionsCancelledTotal.Inc()
	return nil
}

// GetBeneficiaryQuota devuelve límite, uso del mes calendario en curso
// (calculado en vivo desde el historial de distribuciones) y saldo restante.
func (uc *UseCase) GetBeneficiaryQuota(beneficiaryID string) (*QuotaInfo, error) {
	b, err := uc.beneficiaryRepo.GetByID(beneficiaryID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	start, end := domain.MonthRange(time.Now())
	used, err := uc.distributionRepo.SumQuantityByBeneficiary(b.ID, start, end)
	if err != nil {
		return nil, err
	}
	remaining := b.MonthlyLimit - used
	if remaining < 0 {
		remaining = 0
	}
	return &QuotaInfo{
		BeneficiaryID: b.ID,
		MonthlyLimit:  b.MonthlyLimit,
		Used:          used,
		Remaining:     remaining,
	}, nil
}

// GetByID obtiene una distribución por ID.
func (uc *UseCase) GetByID(id string) (*entity.Distribution, error) {
	d, err := uc.distributionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// ListItems lista los items de una distribución.
func (uc *UseCase) ListItems(distributionID string) ([]*entity.DistributionItem, error) {
	return uc.distributionRepo.ListItems(distributionID)
}

// List lista distribuciones con paginación.
func (uc *UseCase) List(limit, offset int) ([]*entity.Distribution, error) {
	return uc.distributionRepo.List(limit, offset)
}

// ListByBeneficiary lista las distribuciones de un beneficiario.
func (uc *UseCase) ListByBeneficiary(beneficiaryID string, limit, offset int) ([]*entity.Distribution, error) {
	return uc.distributionRepo.ListByBeneficiary(beneficiaryID, limit, offset)
}
