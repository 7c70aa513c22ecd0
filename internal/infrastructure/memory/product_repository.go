package memory

import (
	"sort"

	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	session
}

// NewProductRepository construye el repo sobre el store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{session{store: store}}
}

// Create persiste un producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	defer r.lock()()
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetByCategoryAndName busca por categoría y nombre exacto.
func (r *ProductRepo) GetByCategoryAndName(categoryID, name string) (*entity.Product, error) {
	defer r.lock()()
	for _, p := range r.store.products {
		if p.CategoryID == categoryID && p.Name == name {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// GetForUpdate obtiene un producto para actualizarlo. En memoria el mutex de
// la transacción ya serializa a los escritores; no hay bloqueo por fila.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

// Update actualiza datos del producto. No toca StockQuantity.
func (r *ProductRepo) Update(product *entity.Product) error {
	defer r.lock()()
	p, ok := r.store.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stock := p.StockQuantity
	cp := cloneProduct(product)
	cp.StockQuantity = stock
	r.store.products[product.ID] = cp
	return nil
}

// UpdateStock fija el contador de stock (solo desde el registro de movimientos).
func (r *ProductRepo) UpdateStock(productID string, quantity int) error {
	defer r.lock()()
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

// List lista productos ordenados por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	defer r.lock()()
	all := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		all = append(all, cloneProduct(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// ListBelowMinimum lista productos en o por debajo de su umbral mínimo.
func (r *ProductRepo) ListBelowMinimum() ([]*entity.Product, error) {
	defer r.lock()()
	var low []*entity.Product
	for _, p := range r.store.products {
		if p.BelowMinimum() {
			low = append(low, cloneProduct(p))
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].Name < low[j].Name })
	return low, nil
}
