package repository

import "github.com/jhoicas/donaciones-api/internal/domain/entity"

// BeneficiaryRepository define el puerto de persistencia para Beneficiary (DIP).
type BeneficiaryRepository interface {
	Create(beneficiary *entity.Beneficiary) error
	GetByID(id string) (*entity.Beneficiary, error)
	// GetForUpdate bloquea la fila del beneficiario durante el registro o la
	// cancelación de una distribución (serialización por beneficiario).
	GetForUpdate(id string) (*entity.Beneficiary, error)
	Update(beneficiary *entity.Beneficiary) error
	UpdateUsed(id string, usedThisPeriod int) error
	List(limit, offset int) ([]*entity.Beneficiary, error)
}
