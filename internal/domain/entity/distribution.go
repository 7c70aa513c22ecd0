package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado de una distribución. Se registra ya ejecutada: no hay estado pendiente.
// Cancelarla la elimina (con movimientos compensatorios).
const DistributionStatusCompleted = "completed"

// Distribution representa una entrega de stock a un beneficiario.
type Distribution struct {
	ID            string
	BeneficiaryID string
	Date          time.Time
	Status        string // completed
	Notes         string
	TotalValue    *decimal.Decimal
	CreatedAt     time.Time
	CreatedBy     string
}

// DistributionItem es inmutable tras su creación; solo desaparece al eliminar
// la distribución completa.
type DistributionItem struct {
	ID             string
	DistributionID string
	ProductID      string
	Quantity       int // > 0
}

// TotalQuantity suma las cantidades de todos los items.
func TotalQuantity(items []*DistributionItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
