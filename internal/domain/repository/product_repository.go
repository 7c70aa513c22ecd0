package repository

import "github.com/jhoicas/donaciones-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// StockQuantity solo se muta vía UpdateStock, dentro de la transacción que
// inserta el movimiento correspondiente.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCategoryAndName(categoryID, name string) (*entity.Product, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, quantity int) error
	List(limit, offset int) ([]*entity.Product, error)
	ListBelowMinimum() ([]*entity.Product, error)
}
