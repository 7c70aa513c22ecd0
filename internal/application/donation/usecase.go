package donation

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
	ReasonProcessed = "donación procesada"
	ReasonCancelled = "donación cancelada"
)

// UseCase pipeline de donaciones: registro (Pending), procesamiento a stock
// (Processed, exactamente una vez) y cancelación con reversa completa.
type UseCase struct {
	txRunner     TxRunner
	catalog      *catalog.UseCase
	donationRepo repository.DonationRepository
	donorRepo    repository.DonorRepository
}

// NewUseCase construye el pipeline de donaciones.
func NewUseCase(
	txRunner TxRunner,
	catalogUC *catalog.UseCase,
	donationRepo repository.DonationRepository,
	donorRepo repository.DonorRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		catalog:      catalogUC,
		donationRepo: donationRepo,
		donorRepo:    donorRepo,
	}
}

// ItemInput un item prometido: bienes (Quantity > 0) o efectivo
// (CategoryLabel = "cash" y CashAmount > 0).
type ItemInput struct {
	CategoryLabel string
	Description   string
	Quantity      int
	CashAmount    *decimal.Decimal
}

// RegisterInput entrada para registrar una donación.
type RegisterInput struct {
	DonorID string
	Date    time.Time
	Items   []ItemInput
	Notes   string
	ActorID string
}

// Register valida y persiste la donación con sus items en estado Pending.
// No toca el catálogo: el stock solo cambia en Process.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*entity.Donation, error) {
	if in.DonorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	donor, err := uc.donorRepo.GetByID(in.DonorID)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	donationID := uuid.New().String()

	items := make([]*entity.DonationItem, 0, len(in.Items))
	for _, it := range in.Items {
		item := &entity.DonationItem{
			ID:            uuid.New().String(),
			DonationID:    donationID,
			CategoryLabel: it.CategoryLabel,
			Description:   it.Description,
			Quantity:      it.Quantity,
			CashAmount:    it.CashAmount,
		}
		if item.IsCash() {
			if item.CashAmount == nil || !item.CashAmount.GreaterThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
		} else if item.Quantity <= 0 || item.CategoryLabel == "" {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, item)
	}

	d := &entity.Donation{
		ID:             donationID,
		DonorID:        in.DonorID,
		Date:           date,
		Kind:           entity.DeriveDonationKind(items),
		TotalCashValue: entity.TotalCash(items),
		Status:         entity.DonationStatusPending,
		Notes:          in.Notes,
		CreatedAt:      now,
		CreatedBy:      in.ActorID,
	}

	// Cabecera + items en una sola transacción.
	err = uc.txRunner.RunDonation(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.CategoryRepository,
		donationRepo repository.DonationRepository,
	) error {
		if err := donationRepo.Create(d); err != nil {
			return err
		}
		for _, item := range items {
			if err := donationRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Process convierte los items no-efectivo de una donación Pending en stock:
// resuelve/crea categoría y producto, aplica una entrada por item y marca la
// donación como Processed. Todo el loop más el cambio de estado corren en una
// transacción: un fallo a mitad de camino no deja la donación procesada ni
// movimientos huérfanos.
func (uc *UseCase) Process(ctx context.Context, donationID, actorID string) error {
	err := uc.txRunner.RunDonation(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		donationRepo repository.DonationRepository,
	) error {
		d, err := donationRepo.GetForUpdate(donationID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status == entity.DonationStatusProcessed {
			return domain.ErrAlreadyProcessed
		}
		if d.Status != entity.DonationStatusPending {
			return domain.ErrNotPending
		}

		items, err := donationRepo.ListItems(donationID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.IsCash() {
				continue
			}
			category, err := uc.catalog.ResolveOrCreateCategoryInTx(categoryRepo, item.CategoryLabel)
			if err != nil {
				return err
			}
			product, err := uc.catalog.FindOrCreateProductInTx(productRepo, category.ID, item.Description)
			if err != nil {
				return err
			}
			if _, err := uc.catalog.ApplyMovementInTx(movRepo, productRepo, catalog.MovementInput{
				ProductID:     product.ID,
				Type:          entity.MovementTypeIN,
				Quantity:      item.Quantity,
				Reason:        ReasonProcessed,
				ReferenceID:   d.ID,
				ReferenceKind: entity.ReferenceKindDonation,
				ActorID:       actorID,
			}); err != nil {
				return err
			}
		}
		return donationRepo.UpdateStatus(d.ID, entity.DonationStatusProcessed, actorID)
	})
	if err != nil {
		return err
	}
	metrics.DonationsProcessedTotal.Inc()
	return nil
}

// Cancel elimina la donación. Si ya fue procesada, primero emite una salida
// compensatoria por cada item no-efectivo; si el stock actual de algún
// producto es menor que lo que habría que devolver (consumo intermedio), la
// cancelación completa aborta con InsufficientStock — fallo terminal legítimo
// que se reporta al caller, nunca se omite en silencio. El libro conserva la
// traza de la reversa.
func (uc *UseCase) Cancel(ctx context.Context, donationID, actorID string) error {
	var previousStatus string
	err := uc.txRunner.RunDonation(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		donationRepo repository.DonationRepository,
	) error {
		d, err := donationRepo.GetForUpdate(donationID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		previousStatus = d.Status

		items, err := donationRepo.ListItems(donationID)
		if err != nil {
			return err
		}
		if d.Status == entity.DonationStatusProcessed {
			for _, item := range items {
				if item.IsCash() {
					continue
				}
				product, err := uc.resolveProduct(categoryRepo, productRepo, item)
				if err != nil {
					return err
				}
				if _, err := uc.catalog.ApplyMovementInTx(movRepo, productRepo, catalog.MovementInput{
					ProductID:     product.ID,
					Type:          entity.MovementTypeOUT,
					Quantity:      item.Quantity,
					Reason:        ReasonCancelled,
					ReferenceID:   d.ID,
					ReferenceKind: entity.ReferenceKindDonation,
					ActorID:       actorID,
				}); err != nil {
					return err
				}
			}
		}
		if err := donationRepo.DeleteItems(d.ID); err != nil {
			return err
		}
		return donationRepo.Delete(d.ID)
	})
	if err != nil {
		return err
	}
	metrics.DonationsCancelledTotal.WithLabelValues(previousStatus).Inc()
	return nil
}

// resolveProduct re-resuelve el producto de un item por la misma ruta
// determinista que usó Process (categoría normalizada + nombre exacto).
func (uc *UseCase) resolveProduct(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	item *entity.DonationItem,
) (*entity.Product, error) {
	category, err := categoryRepo.GetByNormalizedName(catalog.NormalizeLabel(item.CategoryLabel))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	product, err := productRepo.GetByCategoryAndName(category.ID, item.Description)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// GetByID obtiene una donación por ID.
func (uc *UseCase) GetByID(id string) (*entity.Donation, error) {
	d, err := uc.donationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// ListItems lista los items de una donación.
func (uc *UseCase) ListItems(donationID string) ([]*entity.DonationItem, error) {
	return uc.donationRepo.ListItems(donationID)
}

// List lista donaciones con paginación.
func (uc *UseCase) List(limit, offset int) ([]*entity.Donation, error) {
	return uc.donationRepo.List(limit, offset)
}

// ListByDonor lista las donaciones de un donante.
func (uc *UseCase) ListByDonor(donorID string, limit, offset int) ([]*entity.Donation, error) {
	return uc.donationRepo.ListByDonor(donorID, limit, offset)
}
