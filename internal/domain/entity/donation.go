package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una donación. No existe transición de Processed a Pending.
const (
	DonationStatusPending   = "pending"
	DonationStatusProcessed = "processed"
)

// Tipos de donación, derivados de sus items.
const (
	DonationKindGoods = "goods"
	DonationKindCash  = "cash"
	DonationKindMixed = "mixed"
)

// CashCategoryLabel etiqueta de categoría que marca un item como aporte en efectivo.
const CashCategoryLabel = "cash"

// Donation representa una donación prometida por un donante. Se crea Pending;
// Process la convierte en stock (exactamente una vez); Cancel la elimina
// revirtiendo su efecto si ya fue procesada.
type Donation struct {
	ID             string
	DonorID        string
	Date           time.Time
	Kind           string // goods, cash, mixed
	TotalCashValue *decimal.Decimal
	Status         string // pending, processed
	Notes          string
	CreatedAt      time.Time
	CreatedBy      string
	ProcessedAt    *time.Time
	ProcessedBy    string
}

// DonationItem es inmutable tras su creación; solo desaparece al eliminar
// la donación completa.
type DonationItem struct {
	ID            string
	DonationID    string
	CategoryLabel string
	Description   string
	Quantity      int
	CashAmount    *decimal.Decimal
}

// IsCash indica si el item es un aporte en efectivo (no genera stock).
func (i *DonationItem) IsCash() bool {
	return strings.EqualFold(strings.TrimSpace(i.CategoryLabel), CashCategoryLabel)
}

// DeriveDonationKind calcula el tipo de la donación a partir de sus items:
// solo efectivo -> cash, sin efectivo -> goods, ambos -> mixed.
func DeriveDonationKind(items []*DonationItem) string {
	var hasCash, hasGoods bool
	for _, it := range items {
		if it.IsCash() {
			hasCash = true
		} else {
			hasGoods = true
		}
	}
	switch {
	case hasCash && hasGoods:
		return DonationKindMixed
	case hasCash:
		return DonationKindCash
	default:
		return DonationKindGoods
	}
}

// TotalCash suma los montos en efectivo de los items. Devuelve nil si no hay.
func TotalCash(items []*DonationItem) *decimal.Decimal {
	total := decimal.Zero
	found := false
	for _, it := range items {
		if it.IsCash() && it.CashAmount != nil {
			total = total.Add(*it.CashAmount)
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}
