package repository

import "github.com/jhoicas/donaciones-api/internal/domain/entity"

// DonorRepository define el puerto de persistencia para Donor (DIP).
type DonorRepository interface {
	Create(donor *entity.Donor) error
	GetByID(id string) (*entity.Donor, error)
	Update(donor *entity.Donor) error
	List(limit, offset int) ([]*entity.Donor, error)
	Delete(id string) error
}
