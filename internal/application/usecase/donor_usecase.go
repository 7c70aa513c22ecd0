package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/donaciones-api/internal/application/dto"
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

// DonorUseCase casos de uso CRUD para donantes. Ciclo de vida independiente
// del libro de movimientos.
type DonorUseCase struct {
	repo repository.DonorRepository
}

// NewDonorUseCase construye el caso de uso.
func NewDonorUseCase(repo repository.DonorRepository) *DonorUseCase {
	return &DonorUseCase{repo: repo}
}

// Create crea un donante.
func (uc *DonorUseCase) Create(in dto.CreateDonorRequest) (*dto.DonorResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	donor := &entity.Donor{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(donor); err != nil {
		return nil, err
	}
	return dto.ToDonorResponse(donor), nil
}

// GetByID obtiene un donante por ID.
func (uc *DonorUseCase) GetByID(id string) (*dto.DonorResponse, error) {
	donor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToDonorResponse(donor), nil
}

// Update actualiza campos de contacto del donante.
func (uc *DonorUseCase) Update(id string, in dto.UpdateDonorRequest) (*dto.DonorResponse, error) {
	donor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		donor.Name = *in.Name
	}
	if in.Email != nil {
		donor.Email = *in.Email
	}
	if in.Phone != nil {
		donor.Phone = *in.Phone
	}
	if in.Address != nil {
		donor.Address = *in.Address
	}
	donor.UpdatedAt = time.Now()
	if err := uc.repo.Update(donor); err != nil {
		return nil, err
	}
	return dto.ToDonorResponse(donor), nil
}

// List lista donantes con paginación.
func (uc *DonorUseCase) List(limit, offset int) ([]*dto.DonorResponse, error) {
	donors, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DonorResponse, 0, len(donors))
	for _, d := range donors {
		out = append(out, dto.ToDonorResponse(d))
	}
	return out, nil
}

// Delete elimina un donante. Sus donaciones históricas conservan el DonorID.
func (uc *DonorUseCase) Delete(id string) error {
	donor, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if donor == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
