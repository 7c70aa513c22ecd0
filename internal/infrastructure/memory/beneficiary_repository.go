package memory

import (
	"sort"

	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.BeneficiaryRepository = (*BeneficiaryRepo)(nil)

// BeneficiaryRepo implementación en memoria de BeneficiaryRepository.
type BeneficiaryRepo struct {
	session
}

// NewBeneficiaryRepository construye el repo sobre el store.
func NewBeneficiaryRepository(store *Store) *BeneficiaryRepo {
	return &BeneficiaryRepo{session{store: store}}
}

// Create persiste un beneficiario.
func (r *BeneficiaryRepo) Create(beneficiary *entity.Beneficiary) error {
	defer r.lock()()
	r.store.beneficiaries[beneficiary.ID] = cloneBeneficiary(beneficiary)
	return nil
}

// GetByID obtiene un beneficiario por ID.
func (r *BeneficiaryRepo) GetByID(id string) (*entity.Beneficiary, error) {
	defer r.lock()()
	b, ok := r.store.beneficiaries[id]
	if !ok {
		return nil, nil
	}
	return cloneBeneficiary(b), nil
}

// GetForUpdate obtiene el beneficiario para mutar su cuota. En memoria el
// mutex de la transacción ya serializa las distribuciones concurrentes.
func (r *BeneficiaryRepo) GetForUpdate(id string) (*entity.Beneficiary, error) {
	return r.GetByID(id)
}

// Update actualiza datos del beneficiario. No toca UsedThisPeriod.
func (r *BeneficiaryRepo) Update(beneficiary *entity.Beneficiary) error {
	defer r.lock()()
	b, ok := r.store.beneficiaries[beneficiary.ID]
	if !ok {
		return domain.ErrNotFound
	}
	used := b.UsedThisPeriod
	cp := cloneBeneficiary(beneficiary)
	cp.UsedThisPeriod = used
	r.store.beneficiaries[beneficiary.ID] = cp
	return nil
}

// UpdateUsed fija el contador de cuota (solo desde el pipeline de distribución).
func (r *BeneficiaryRepo) UpdateUsed(id string, usedThisPeriod int) error {
	defer r.lock()()
	b, ok := r.store.beneficiaries[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.UsedThisPeriod = usedThisPeriod
	return nil
}

// List lista beneficiarios ordenados por nombre.
func (r *BeneficiaryRepo) List(limit, offset int) ([]*entity.Beneficiary, error) {
	defer r.lock()()
	all := make([]*entity.Beneficiary, 0, len(r.store.beneficiaries))
	for _, b := range r.store.beneficiaries {
		all = append(all, cloneBeneficiary(b))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}
