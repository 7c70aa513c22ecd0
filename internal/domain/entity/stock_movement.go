package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Origen del movimiento (referencia a la operación que lo causó).
const (
	ReferenceKindDonation     = "donation"
	ReferenceKindDistribution = "distribution"
	ReferenceKindAdjustment   = "adjustment"
)

// StockMovement representa una entrada del libro de movimientos. Es append-only:
// nunca se actualiza ni se elimina; revertir un efecto significa escribir un
// movimiento compensatorio de tipo contrario, no alterar la historia.
type StockMovement struct {
	ID             string
	ProductID      string
	Type           string // IN, OUT
	Quantity       int    // siempre positivo; el signo lo da Type
	QuantityBefore int
	QuantityAfter  int // nunca negativo
	Reason         string
	ReferenceID    string // ID de la donación, distribución o ajuste
	ReferenceKind  string // donation, distribution, adjustment
	CreatedAt      time.Time
	CreatedBy      string // UserID del actor, solo auditoría
}
