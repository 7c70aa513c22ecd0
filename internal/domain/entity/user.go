package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleVoluntario = "voluntario"
)

// User representa un usuario del sistema (voluntario u administrador de la
// organización). Su ID se estampa como actor en movimientos, donaciones y
// distribuciones, solo como metadato de auditoría.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, voluntario
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
