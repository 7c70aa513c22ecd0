package entity

import "time"

// Category representa una categoría de productos donados (ej. "Ropa", "Alimentos").
// NormalizedName es la clave de búsqueda: minúsculas, sin espacios sobrantes ni acentos.
type Category struct {
	ID             string
	Name           string
	NormalizedName string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
