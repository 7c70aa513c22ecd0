package entity

import "time"

// Donor representa un donante. Ciclo de vida independiente: el libro de
// movimientos nunca lo muta.
type Donor struct {
	ID        string
	Name      string
	Document  string // cédula / NIT, opcional
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
