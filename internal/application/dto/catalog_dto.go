package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID             string           `json:"id"`
	CategoryID     string           `json:"category_id"`
	Name           string           `json:"name"`
	StockQuantity  int              `json:"stock_quantity"`
	MinQuantity    int              `json:"min_quantity"`
	BelowMinimum   bool             `json:"below_minimum"`
	Size           string           `json:"size,omitempty"`
	Condition      string           `json:"condition,omitempty"`
	EstimatedValue *decimal.Decimal `json:"estimated_value,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToProductResponse mapea la entidad al DTO.
func ToProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		StockQuantity:  p.StockQuantity,
		MinQuantity:    p.MinQuantity,
		BelowMinimum:   p.BelowMinimum(),
		Size:           p.Size,
		Condition:      p.Condition,
		EstimatedValue: p.EstimatedValue,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// AdjustStockRequest corrección manual de stock.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // IN | OUT
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// MovementResponse entrada del libro de movimientos en respuestas.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         string    `json:"reason"`
	ReferenceID    string    `json:"reference_id"`
	ReferenceKind  string    `json:"reference_kind"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// ToMovementResponse mapea la entidad al DTO.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	return &MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		ReferenceID:    m.ReferenceID,
		ReferenceKind:  m.ReferenceKind,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToMovementResponses mapea una lista de movimientos.
func ToMovementResponses(movements []*entity.StockMovement) []*MovementResponse {
	out := make([]*MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
