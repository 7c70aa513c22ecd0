package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// DistributionItemRequest un renglón de la entrega.
type DistributionItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RegisterDistributionRequest alta de distribución (se registra ya ejecutada).
type RegisterDistributionRequest struct {
	BeneficiaryID string                    `json:"beneficiary_id"`
	Date          *time.Time                `json:"date,omitempty"`
	Items         []DistributionItemRequest `json:"items"`
	Notes         string                    `json:"notes,omitempty"`
	TotalValue    *decimal.Decimal          `json:"total_value,omitempty"`
}

// DistributionResponse distribución en respuestas.
type DistributionResponse struct {
	ID            string           `json:"id"`
	BeneficiaryID string           `json:"beneficiary_id"`
	Date          time.Time        `json:"date"`
	Status        string           `json:"status"`
	Notes         string           `json:"notes,omitempty"`
	TotalValue    *decimal.Decimal `json:"total_value,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ToDistributionResponse mapea la entidad al DTO.
func ToDistributionResponse(d *entity.Distribution) *DistributionResponse {
	return &DistributionResponse{
		ID:            d.ID,
		BeneficiaryID: d.BeneficiaryID,
		Date:          d.Date,
		Status:        d.Status,
		Notes:         d.Notes,
		TotalValue:    d.TotalValue,
		CreatedAt:     d.CreatedAt,
	}
}

// QuotaResponse saldo de cuota del beneficiario en el mes en curso.
type QuotaResponse struct {
	BeneficiaryID string `json:"beneficiary_id"`
	MonthlyLimit  int    `json:"monthly_limit"`
	Used          int    `json:"used"`
	Remaining     int    `json:"remaining"`
}
