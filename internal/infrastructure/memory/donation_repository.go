package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.DonationRepository = (*DonationRepo)(nil)

// DonationRepo implementación en memoria de DonationRepository.
type DonationRepo struct {
	session
}

// NewDonationRepository construye el repo sobre el store.
func NewDonationRepository(store *Store) *DonationRepo {
	return &DonationRepo{session{store: store}}
}

// Create persiste la cabecera de una donación.
func (r *DonationRepo) Create(donation *entity.Donation) error {
	defer r.lock()()
	r.store.donations[donation.ID] = cloneDonation(donation)
	return nil
}

// CreateItem persiste un item de la donación.
func (r *DonationRepo) CreateItem(item *entity.DonationItem) error {
	defer r.lock()()
	r.store.donationItems[item.DonationID] = append(r.store.donationItems[item.DonationID], cloneDonationItem(item))
	return nil
}

// GetByID obtiene una donación por ID.
func (r *DonationRepo) GetByID(id string) (*entity.Donation, error) {
	defer r.lock()()
	d, ok := r.store.donations[id]
	if !ok {
		return nil, nil
	}
	return cloneDonation(d), nil
}

// GetForUpdate obtiene una donación para mutarla. En memoria el mutex de la
// transacción ya serializa Process/Cancel concurrentes.
func (r *DonationRepo) GetForUpdate(id string) (*entity.Donation, error) {
	return r.GetByID(id)
}

// ListItems obtiene los items de una donación en orden de creación.
func (r *DonationRepo) ListItems(donationID string) ([]*entity.DonationItem, error) {
	defer r.lock()()
	items := r.store.donationItems[donationID]
	out := make([]*entity.DonationItem, len(items))
	for i, it := range items {
		out[i] = cloneDonationItem(it)
	}
	return out, nil
}

// UpdateStatus cambia el estado y estampa processed_at/processed_by.
func (r *DonationRepo) UpdateStatus(id, status, processedBy string) error {
	defer r.lock()()
	d, ok := r.store.donations[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	if status == entity.DonationStatusProcessed {
		now := time.Now()
		d.ProcessedAt = &now
		d.ProcessedBy = processedBy
	}
	return nil
}

func (r *DonationRepo) list(filter func(*entity.Donation) bool, limit, offset int) []*entity.Donation {
	var all []*entity.Donation
	for _, d := range r.store.donations {
		if filter == nil || filter(d) {
			all = append(all, cloneDonation(d))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return paginate(all, limit, offset)
}

// ListByDonor lista donaciones de un donante, recientes primero.
func (r *DonationRepo) ListByDonor(donorID string, limit, offset int) ([]*entity.Donation, error) {
	defer r.lock()()
	return r.list(func(d *entity.Donation) bool { return d.DonorID == donorID }, limit, offset), nil
}

// List lista donaciones, recientes primero.
func (r *DonationRepo) List(limit, offset int) ([]*entity.Donation, error) {
	defer r.lock()()
	return r.list(nil, limit, offset), nil
}

// DeleteItems elimina los items de una donación (solo desde Cancel).
func (r *DonationRepo) DeleteItems(donationID string) error {
	defer r.lock()()
	delete(r.store.donationItems, donationID)
	return nil
}

// Delete elimina la cabecera de una donación (solo desde Cancel).
func (r *DonationRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.store.donations, id)
	return nil
}
