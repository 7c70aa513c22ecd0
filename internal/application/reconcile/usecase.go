// Package reconcile detecta y repara deriva entre los contadores
// materializados (stock por producto, cuota usada por beneficiario) y los
// valores recomputados desde la historia. Los contadores se actualizan en la
// misma transacción que cada escritura; esta rutina existe para verificar que
// esa invariante se mantuvo y para repararla si algo la rompió.
package reconcile

import (
	"time"

	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

// listPageSize tamaño de página al recorrer productos/beneficiarios.
const listPageSize = 200

// ProductDrift un producto cuyo contador no coincide con Σ movimientos.
type ProductDrift struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stored    int    `json:"stored"`
	Computed  int    `json:"computed"`
}

// BeneficiaryDrift un beneficiario cuyo contador no coincide con la suma de
// sus distribuciones del mes en curso.
type BeneficiaryDrift struct {
	BeneficiaryID string `json:"beneficiary_id"`
	Name          string `json:"name"`
	Stored        int    `json:"stored"`
	Computed      int    `json:"computed"`
}

// UseCase rutina de reconciliación (herramienta de operador; solo Repair muta).
type UseCase struct {
	productRepo      repository.ProductRepository
	movementRepo     repository.StockMovementRepository
	beneficiaryRepo  repository.BeneficiaryRepository
	distributionRepo repository.DistributionRepository
}

// NewUseCase construye la rutina de reconciliación.
func NewUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	beneficiaryRepo repository.BeneficiaryRepository,
	distributionRepo repository.DistributionRepository,
) *UseCase {
	return &UseCase{
		productRepo:      productRepo,
		movementRepo:     movementRepo,
		beneficiaryRepo:  beneficiaryRepo,
		distributionRepo: distributionRepo,
	}
}

// CheckProducts recompara el stock de cada producto contra
// Σ(entradas) − Σ(salidas) de su libro. No muta nada.
func (uc *UseCase) CheckProducts() ([]ProductDrift, error) {
	var drifts []ProductDrift
	for offset := 0; ; offset += listPageSize {
		products, err := uc.productRepo.List(listPageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			return drifts, nil
		}
		for _, p := range products {
			computed, err := uc.movementRepo.SumByProduct(p.ID)
			if err != nil {
				return nil, err
			}
			if computed != p.StockQuantity {
				drifts = append(drifts, ProductDrift{
					ProductID: p.ID,
					Name:      p.Name,
					Stored:    p.StockQuantity,
					Computed:  computed,
				})
			}
		}
	}
}

// RepairProducts reescribe el contador de los productos con deriva al valor
// recomputado y devuelve lo que corrigió.
func (uc *UseCase) RepairProducts() ([]ProductDrift, error) {
	drifts, err := uc.CheckProducts()
	if err != nil {
		return nil, err
	}
	for _, d := range drifts {
		if d.Computed < 0 {
			// Una historia que suma negativo no se repara a ciegas.
			return drifts, &domain.InconsistentStateError{Op: "reconcile product " + d.ProductID, Cause: domain.ErrInsufficientStock}
		}
		if err := uc.productRepo.UpdateStock(d.ProductID, d.Computed); err != nil {
			return drifts, err
		}
	}
	return drifts, nil
}

// CheckBeneficiaries recompara el contador de cuota de cada beneficiario
// contra la suma de sus distribuciones del mes calendario en curso.
func (uc *UseCase) CheckBeneficiaries() ([]BeneficiaryDrift, error) {
	start, end := domain.MonthRange(time.Now())
	var drifts []BeneficiaryDrift
	for offset := 0; ; offset += listPageSize {
		beneficiaries, err := uc.beneficiaryRepo.List(listPageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(beneficiaries) == 0 {
			return drifts, nil
		}
		for _, b := range beneficiaries {
			computed, err := uc.distributionRepo.SumQuantityByBeneficiary(b.ID, start, end)
			if err != nil {
				return nil, err
			}
			if computed != b.UsedThisPeriod {
				drifts = append(drifts, BeneficiaryDrift{
					BeneficiaryID: b.ID,
					Name:          b.Name,
					Stored:        b.UsedThisPeriod,
					Computed:      computed,
				})
			}
		}
	}
}

// RepairBeneficiaries reescribe el contador de cuota de los beneficiarios con
// deriva al valor recomputado y devuelve lo que corrigió.
func (uc *UseCase) RepairBeneficiaries() ([]BeneficiaryDrift, error) {
	drifts, err := uc.CheckBeneficiaries()
	if err != nil {
		return nil, err
	}
	for _, d := range drifts {
		if err := uc.beneficiaryRepo.UpdateUsed(d.BeneficiaryID, d.Computed); err != nil {
			return drifts, err
		}
	}
	return drifts, nil
}
