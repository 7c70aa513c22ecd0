package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// DonationItemRequest un item prometido. Bienes: quantity > 0.
// Efectivo: category = "cash" y cash_amount > 0.
type DonationItemRequest struct {
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	CashAmount  *decimal.Decimal `json:"cash_amount,omitempty"`
}

// RegisterDonationRequest alta de donación (queda Pending).
type RegisterDonationRequest struct {
	DonorID string                `json:"donor_id"`
	Date    *time.Time            `json:"date,omitempty"`
	Items   []DonationItemRequest `json:"items"`
	Notes   string                `json:"notes,omitempty"`
}

// DonationResponse donación en respuestas.
type DonationResponse struct {
	ID             string           `json:"id"`
	DonorID        string           `json:"donor_id"`
	Date           time.Time        `json:"date"`
	Kind           string           `json:"kind"`
	TotalCashValue *decimal.Decimal `json:"total_cash_value,omitempty"`
	Status         string           `json:"status"`
	Notes          string           `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ToDonationResponse mapea la entidad al DTO.
func ToDonationResponse(d *entity.Donation) *DonationResponse {
	return &DonationResponse{
		ID:             d.ID,
		DonorID:        d.DonorID,
		Date:           d.Date,
		Kind:           d.Kind,
		TotalCashValue: d.TotalCashValue,
		Status:         d.Status,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
	}
}

// DonationItemResponse item de donación en respuestas.
type DonationItemResponse struct {
	ID          string           `json:"id"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	CashAmount  *decimal.Decimal `json:"cash_amount,omitempty"`
}

// ToDonationItemResponses mapea los items de una donación.
func ToDonationItemResponses(items []*entity.DonationItem) []*DonationItemResponse {
	out := make([]*DonationItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, &DonationItemResponse{
			ID:          it.ID,
			Category:    it.CategoryLabel,
			Description: it.Description,
			Quantity:    it.Quantity,
			CashAmount:  it.CashAmount,
		})
	}
	return out
}
