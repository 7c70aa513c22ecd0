package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/donaciones-api/internal/application/dto"
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

// BeneficiaryUseCase casos de uso CRUD para beneficiarios. UsedThisPeriod no
// se toca aquí: solo lo muta el pipeline de distribución.
type BeneficiaryUseCase struct {
	repo repository.BeneficiaryRepository
}

// NewBeneficiaryUseCase construye el caso de uso.
func NewBeneficiaryUseCase(repo repository.BeneficiaryRepository) *BeneficiaryUseCase {
	return &BeneficiaryUseCase{repo: repo}
}

// Create crea un beneficiario activo con cuota mensual.
func (uc *BeneficiaryUseCase) Create(in dto.CreateBeneficiaryRequest) (*dto.BeneficiaryResponse, error) {
	if in.Name == "" || in.MonthlyLimit <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	b := &entity.Beneficiary{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Document:       in.Document,
		Phone:          in.Phone,
		Address:        in.Address,
		FamilySize:     in.FamilySize,
		MonthlyLimit:   in.MonthlyLimit,
		UsedThisPeriod: 0,
		Status:         entity.BeneficiaryStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(b); err != nil {
		return nil, err
	}
	return dto.ToBeneficiaryResponse(b), nil
}

// GetByID obtiene un beneficiario por ID.
func (uc *BeneficiaryUseCase) GetByID(id string) (*dto.BeneficiaryResponse, error) {
	b, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToBeneficiaryResponse(b), nil
}

// Update actualiza datos del beneficiario (incluye cuota mensual y estado).
func (uc *BeneficiaryUseCase) Update(id string, in dto.UpdateBeneficiaryRequest) (*dto.BeneficiaryResponse, error) {
	b, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.FamilySize != nil {
		b.FamilySize = *in.FamilySize
	}
	if in.MonthlyLimit != nil {
		if *in.MonthlyLimit <= 0 {
			return nil, domain.ErrInvalidInput
		}
		b.MonthlyLimit = *in.MonthlyLimit
	}
	if in.Status != nil {
		if *in.Status != entity.BeneficiaryStatusActive && *in.Status != entity.BeneficiaryStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		b.Status = *in.Status
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(b); err != nil {
		return nil, err
	}
	return dto.ToBeneficiaryResponse(b), nil
}

// List lista beneficiarios con paginación.
func (uc *BeneficiaryUseCase) List(limit, offset int) ([]*dto.BeneficiaryResponse, error) {
	beneficiaries, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BeneficiaryResponse, 0, len(beneficiaries))
	for _, b := range beneficiaries {
		out = append(out, dto.ToBeneficiaryResponse(b))
	}
	return out, nil
}
