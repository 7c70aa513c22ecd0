package repository

import "github.com/jhoicas/donaciones-api/internal/domain/entity"

// DonationRepository define el puerto de persistencia para Donation y sus items.
// Delete solo lo usa Cancel, después de compensar el stock; los items se
// eliminan antes que la cabecera.
type DonationRepository interface {
	Create(donation *entity.Donation) error
	CreateItem(item *entity.DonationItem) error
	GetByID(id string) (*entity.Donation, error)
	// GetForUpdate bloquea la cabecera para serializar Process/Cancel concurrentes.
	GetForUpdate(id string) (*entity.Donation, error)
	ListItems(donationID string) ([]*entity.DonationItem, error)
	UpdateStatus(id, status, processedBy string) error
	ListByDonor(donorID string, limit, offset int) ([]*entity.Donation, error)
	List(limit, offset int) ([]*entity.Donation, error)
	DeleteItems(donationID string) error
	Delete(id string) error
}
