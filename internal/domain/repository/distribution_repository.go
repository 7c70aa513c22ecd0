package repository

import (
	"time"

	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// DistributionRepository define el puerto de persistencia para Distribution
// y sus items. Delete solo lo usa Cancel, después de compensar stock y cuota.
type DistributionRepository interface {
	Create(distribution *entity.Distribution) error
	CreateItem(item *entity.DistributionItem) error
	GetByID(id string) (*entity.Distribution, error)
	ListItems(distributionID string) ([]*entity.DistributionItem, error)
	ListByBeneficiary(beneficiaryID string, limit, offset int) ([]*entity.Distribution, error)
	List(limit, offset int) ([]*entity.Distribution, error)
	// SumQuantityByBeneficiary suma las cantidades entregadas al beneficiario en
	// distribuciones con fecha en [from, to). Es la lectura "viva" de la cuota.
	SumQuantityByBeneficiary(beneficiaryID string, from, to time.Time) (int, error)
	DeleteItems(distributionID string) error
	Delete(id string) error
}
