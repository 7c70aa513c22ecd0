package repository

import "github.com/jhoicas/donaciones-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByNormalizedName(normalized string) (*entity.Category, error)
	Rename(id, name, normalized string) error
	List(limit, offset int) ([]*entity.Category, error)
}
