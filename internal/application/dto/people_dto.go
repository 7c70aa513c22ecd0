package dto

import (
	"time"

	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// CreateDonorRequest alta de donante.
type CreateDonorRequest struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// UpdateDonorRequest actualización parcial de donante.
type UpdateDonorRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// DonorResponse donante en respuestas.
type DonorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDonorResponse mapea la entidad al DTO.
func ToDonorResponse(d *entity.Donor) *DonorResponse {
	return &DonorResponse{
		ID:        d.ID,
		Name:      d.Name,
		Document:  d.Document,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		CreatedAt: d.CreatedAt,
	}
}

// CreateBeneficiaryRequest alta de beneficiario.
type CreateBeneficiaryRequest struct {
	Name         string `json:"name"`
	Document     string `json:"document,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	FamilySize   int    `json:"family_size,omitempty"`
	MonthlyLimit int    `json:"monthly_limit"`
}

// UpdateBeneficiaryRequest actualización parcial de beneficiario.
type UpdateBeneficiaryRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	FamilySize   *int    `json:"family_size,omitempty"`
	MonthlyLimit *int    `json:"monthly_limit,omitempty"`
	Status       *string `json:"status,omitempty"` // active | inactive
}

// BeneficiaryResponse beneficiario en respuestas.
type BeneficiaryResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Document       string    `json:"document,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	FamilySize     int       `json:"family_size,omitempty"`
	MonthlyLimit   int       `json:"monthly_limit"`
	UsedThisPeriod int       `json:"used_this_period"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToBeneficiaryResponse mapea la entidad al DTO.
func ToBeneficiaryResponse(b *entity.Beneficiary) *BeneficiaryResponse {
	return &BeneficiaryResponse{
		ID:             b.ID,
		Name:           b.Name,
		Document:       b.Document,
		Phone:          b.Phone,
		Address:        b.Address,
		FamilySize:     b.FamilySize,
		MonthlyLimit:   b.MonthlyLimit,
		UsedThisPeriod: b.UsedThisPeriod,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
	}
}
