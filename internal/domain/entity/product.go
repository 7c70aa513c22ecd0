package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinQuantity mínimo asignado a productos creados automáticamente
// al procesar una donación.
const DefaultMinQuantity = 5

// Product representa un producto del inventario de donaciones.
// StockQuantity es un contador materializado: solo cambia junto con un
// StockMovement, dentro de la misma transacción.
type Product struct {
	ID             string
	CategoryID     string
	Name           string
	StockQuantity  int // nunca negativo
	MinQuantity    int // umbral de alerta de stock bajo
	Size           string
	Condition      string // nuevo, usado, etc.
	EstimatedValue *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelowMinimum indica si el producto está en o por debajo de su umbral mínimo.
func (p *Product) BelowMinimum() bool {
	return p.StockQuantity <= p.MinQuantity
}
