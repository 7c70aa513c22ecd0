package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.DistributionRepository = (*DistributionRepo)(nil)

// DistributionRepo implementación en memoria de DistributionRepository.
type DistributionRepo struct {
	session
}

// NewDistributionRepository construye el repo sobre el store.
func NewDistributionRepository(store *Store) *DistributionRepo {
	return &DistributionRepo{session{store: store}}
}

// Create persiste la cabecera de una distribución.
func (r *DistributionRepo) Create(distribution *entity.Distribution) error {
	defer r.lock()()
	r.store.distributions[distribution.ID] = cloneDistribution(distribution)
	return nil
}

// CreateItem persiste un item de la distribución.
func (r *DistributionRepo) CreateItem(item *entity.DistributionItem) error {
	defer r.lock()()
	cp := *item
	r.store.distItems[item.DistributionID] = append(r.store.distItems[item.DistributionID], &cp)
	return nil
}

// GetByID obtiene una distribución por ID.
func (r *DistributionRepo) GetByID(id string) (*entity.Distribution, error) {
	defer r.lock()()
	d, ok := r.store.distributions[id]
	if !ok {
		return nil, nil
	}
	return cloneDistribution(d), nil
}

// ListItems obtiene los items de una distribución en orden de creación.
func (r *DistributionRepo) ListItems(distributionID string) ([]*entity.DistributionItem, error) {
	defer r.lock()()
	items := r.store.distItems[distributionID]
	out := make([]*entity.DistributionItem, len(items))
	for i, it := range items {
		cp := *it
		out[i] = &cp
	}
	return out, nil
}

func (r *DistributionRepo) list(filter func(*entity.Distribution) bool, limit, offset int) []*entity.Distribution {
	var all []*entity.Distribution
	for _, d := range r.store.distributions {
		if filter == nil || filter(d) {
			all = append(all, cloneDistribution(d))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return paginate(all, limit, offset)
}

// ListByBeneficiary lista distribuciones de un beneficiario, recientes primero.
func (r *DistributionRepo) ListByBeneficiary(beneficiaryID string, limit, offset int) ([]*entity.Distribution, error) {
	defer r.lock()()
	return r.list(func(d *entity.Distribution) bool { return d.BeneficiaryID == beneficiaryID }, limit, offset), nil
}

// List lista distribuciones, recientes primero.
func (r *DistributionRepo) List(limit, offset int) ([]*entity.Distribution, error) {
	defer r.lock()()
	return r.list(nil, limit, offset), nil
}

// SumQuantityByBeneficiary suma las cantidades entregadas al beneficiario con
// fecha en [from, to).
func (r *DistributionRepo) SumQuantityByBeneficiary(beneficiaryID string, from, to time.Time) (int, error) {
	defer r.lock()()
	sum := 0
	for _, d := range r.store.distributions {
		if d.BeneficiaryID != beneficiaryID {
			continue
		}
		if d.Date.Before(from) || !d.Date.Before(to) {
			continue
		}
		for _, it := range r.store.distItems[d.ID] {
			sum += it.Quantity
		}
	}
	return sum, nil
}

// DeleteItems elimina los items de una distribución (solo desde Cancel).
func (r *DistributionRepo) DeleteItems(distributionID string) error {
	defer r.lock()()
	delete(r.store.distItems, distributionID)
	return nil
}

// Delete elimina la cabecera de una distribución (solo desde Cancel).
func (r *DistributionRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.store.distributions, id)
	return nil
}
