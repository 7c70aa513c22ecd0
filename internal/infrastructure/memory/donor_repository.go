package memory

import (
	"sort"

	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.DonorRepository = (*DonorRepo)(nil)

// DonorRepo implementación en memoria de DonorRepository.
type DonorRepo struct {
	session
}

// NewDonorRepository construye el repo sobre el store.
func NewDonorRepository(store *Store) *DonorRepo {
	return &DonorRepo{session{store: store}}
}

// Create persiste un donante.
func (r *DonorRepo) Create(donor *entity.Donor) error {
	defer r.lock()()
	r.store.donors[donor.ID] = cloneDonor(donor)
	return nil
}

// GetByID obtiene un donante por ID.
func (r *DonorRepo) GetByID(id string) (*entity.Donor, error) {
	defer r.lock()()
	d, ok := r.store.donors[id]
	if !ok {
		return nil, nil
	}
	return cloneDonor(d), nil
}

// Update actualiza un donante.
func (r *DonorRepo) Update(donor *entity.Donor) error {
	defer r.lock()()
	if _, ok := r.store.donors[donor.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.donors[donor.ID] = cloneDonor(donor)
	return nil
}

// List lista donantes ordenados por nombre.
func (r *DonorRepo) List(limit, offset int) ([]*entity.Donor, error) {
	defer r.lock()()
	all := make([]*entity.Donor, 0, len(r.store.donors))
	for _, d := range r.store.donors {
		all = append(all, cloneDonor(d))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// Delete elimina un donante.
func (r *DonorRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.store.donors[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.donors, id)
	return nil
}
