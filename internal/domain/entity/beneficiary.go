package entity

import "time"

// Estados válidos para Beneficiary.
const (
	BeneficiaryStatusActive   = "active"
	BeneficiaryStatusInactive = "inactive"
)

// Beneficiary representa una persona o familia atendida. UsedThisPeriod es el
// contador del rastreador de cuota: solo lo muta el pipeline de distribución,
// dentro de la misma transacción que los movimientos de stock.
type Beneficiary struct {
	ID             string
	Name           string
	Document       string
	Phone          string
	Address        string
	FamilySize     int
	MonthlyLimit   int    // > 0
	UsedThisPeriod int    // 0..MonthlyLimit
	Status         string // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
