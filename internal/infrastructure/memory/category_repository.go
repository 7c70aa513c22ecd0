package memory

import (
	"sort"

	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	session
}

// NewCategoryRepository construye el repo sobre el store.
func NewCategoryRepository(store *Store) *CategoryRepo {
	return &CategoryRepo{session{store: store}}
}

// Create persiste una categoría. Nombre normalizado duplicado => domain.ErrDuplicate,
// como la restricción UNIQUE en PostgreSQL.
func (r *CategoryRepo) Create(category *entity.Category) error {
	defer r.lock()()
	for _, c := range r.store.categories {
		if c.NormalizedName == category.NormalizedName {
			return domain.ErrDuplicate
		}
	}
	r.store.categories[category.ID] = cloneCategory(category)
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	defer r.lock()()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, nil
	}
	return cloneCategory(c), nil
}

// GetByNormalizedName busca por nombre normalizado.
func (r *CategoryRepo) GetByNormalizedName(normalized string) (*entity.Category, error) {
	defer r.lock()()
	for _, c := range r.store.categories {
		if c.NormalizedName == normalized {
			return cloneCategory(c), nil
		}
	}
	return nil, nil
}

// Rename cambia el nombre visible y el normalizado de una categoría.
func (r *CategoryRepo) Rename(id, name, normalized string) error {
	defer r.lock()()
	c, ok := r.store.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.store.categories {
		if other.ID != id && other.NormalizedName == normalized {
			return domain.ErrDuplicate
		}
	}
	c.Name = name
	c.NormalizedName = normalized
	return nil
}

// List lista categorías ordenadas por nombre.
func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	defer r.lock()()
	all := make([]*entity.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		all = append(all, cloneCategory(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}
