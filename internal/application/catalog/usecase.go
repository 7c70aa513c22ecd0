package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
	"github.com/jhoicas/donaciones-api/pkg/metrics"
)

// UseCase operaciones del catálogo: resolución idempotente de categorías,
// alta perezosa de productos y aplicación de movimientos de stock con el
// contador materializado y el libro append-only en una misma transacción.
type UseCase struct {
	txRunner     TxRunner
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(
	txRunner TxRunner,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// MovementInput entrada para aplicar un movimiento de stock.
type MovementInput struct {
	ProductID     string
	Type          string // entity.MovementTypeIN | entity.MovementTypeOUT
	Quantity      int    // > 0
	Reason        string
	ReferenceID   string
	ReferenceKind string
	ActorID       string
}

// ResolveOrCreateCategoryInTx busca la categoría por nombre normalizado y la
// crea si no existe, usando el repositorio del caller (misma transacción).
// Idempotente: la misma etiqueta normalizada siempre resuelve al mismo ID.
func (uc *UseCase) ResolveOrCreateCategoryInTx(categoryRepo repository.CategoryRepository, label string) (*entity.Category, error) {
	normalized := NormalizeLabel(label)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := categoryRepo.GetByNormalizedName(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now()
	category := &entity.Category{
		ID:             uuid.New().String(),
		Name:           label,
		NormalizedName: normalized,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := categoryRepo.Create(category); err != nil {
		if err == domain.ErrDuplicate {
			// Otro writer la creó entre el lookup y el insert: releer.
			return categoryRepo.GetByNormalizedName(normalized)
		}
		return nil, err
	}
	return category, nil
}

// ResolveOrCreateCategory variante fuera de transacción, con los repos propios.
func (uc *UseCase) ResolveOrCreateCategory(label string) (*entity.Category, error) {
	return uc.ResolveOrCreateCategoryInTx(uc.categoryRepo, label)
}

// FindOrCreateProductInTx busca un producto por nombre exacto dentro de la
// categoría; si no existe lo crea con stock cero y mínimo por defecto.
func (uc *UseCase) FindOrCreateProductInTx(productRepo repository.ProductRepository, categoryID, name string) (*entity.Product, error) {
	if categoryID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := productRepo.GetByCategoryAndName(categoryID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CategoryID:    categoryID,
		Name:          name,
		StockQuantity: 0,
		MinQuantity:   entity.DefaultMinQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := productRepo.Create(product); err != nil {
		if err == domain.ErrDuplicate {
			return productRepo.GetByCategoryAndName(categoryID, name)
		}
		return nil, err
	}
	return product, nil
}

// FindOrCreateProduct variante fuera de transacción, con los repos propios.
func (uc *UseCase) FindOrCreateProduct(categoryID, name string) (*entity.Product, error) {
	return uc.FindOrCreateProductInTx(uc.productRepo, categoryID, name)
}

// ApplyMovementInTx aplica un movimiento usando los repositorios del caller
// (misma transacción): bloquea la fila del producto, calcula before/after,
// rechaza salidas que dejarían stock negativo, actualiza el contador y
// escribe la entrada del libro. Devuelve el movimiento creado.
func (uc *UseCase) ApplyMovementInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	in MovementInput,
) (*entity.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila del producto (SELECT FOR UPDATE) para evitar que dos
	// salidas concurrentes pasen ambas la verificación de suficiencia.
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	before := product.StockQuantity
	var after int
	switch in.Type {
	case entity.MovementTypeIN:
		after = before + in.Quantity
	case entity.MovementTypeOUT:
		after = before - in.Quantity
		if after < 0 {
			metrics.RejectionsTotal.WithLabelValues("insufficient_stock").Inc()
			return nil, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   in.Quantity,
				Available:   before,
			}
		}
	}

	if err := productRepo.UpdateStock(product.ID, after); err != nil {
		return nil, err
	}
	movement := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         in.Reason,
		ReferenceID:    in.ReferenceID,
		ReferenceKind:  in.ReferenceKind,
		CreatedAt:      time.Now(),
		CreatedBy:      in.ActorID,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	metrics.MovementsTotal.WithLabelValues(in.Type, in.ReferenceKind).Inc()
	return movement, nil
}

// Adjust registra una corrección manual de stock fuera de los pipelines
// (merma, conteo físico, carga inicial). Mismo contrato que ApplyMovementInTx,
// con referencia de tipo ajuste, en su propia transacción.
func (uc *UseCase) Adjust(ctx context.Context, productID, movementType string, quantity int, reason, actorID string) (*entity.StockMovement, error) {
	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		movement, err = uc.ApplyMovementInTx(movRepo, productRepo, MovementInput{
			ProductID:     productID,
			Type:          movementType,
			Quantity:      quantity,
			Reason:        reason,
			ReferenceID:   uuid.New().String(),
			ReferenceKind: entity.ReferenceKindAdjustment,
			ActorID:       actorID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// GetProduct obtiene un producto por ID.
func (uc *UseCase) GetProduct(id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista productos con paginación.
func (uc *UseCase) ListProducts(limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// ListBelowMinimum lista los productos en o por debajo de su umbral mínimo.
func (uc *UseCase) ListBelowMinimum() ([]*entity.Product, error) {
	return uc.productRepo.ListBelowMinimum()
}

// ListCategories lista categorías con paginación.
func (uc *UseCase) ListCategories(limit, offset int) ([]*entity.Category, error) {
	return uc.categoryRepo.List(limit, offset)
}

// ListMovementsByProduct lista movimientos de un producto, más recientes primero.
func (uc *UseCase) ListMovementsByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movementRepo.ListByProduct(productID, limit, offset)
}

// ListMovementsByReference lista los movimientos causados por una operación.
func (uc *UseCase) ListMovementsByReference(referenceID string) ([]*entity.StockMovement, error) {
	return uc.movementRepo.ListByReference(referenceID)
}
