package memory

import (
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación en memoria del libro de movimientos.
// Append-only: el slice del store solo crece.
type StockMovementRepo struct {
	session
}

// NewStockMovementRepository construye el repo sobre el store.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{session{store: store}}
}

// Create agrega un movimiento al libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	defer r.lock()()
	r.store.movements = append(r.store.movements, cloneMovement(movement))
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	defer r.lock()()
	for _, m := range r.store.movements {
		if m.ID == id {
			return cloneMovement(m), nil
		}
	}
	return nil, nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var list []*entity.StockMovement
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		if r.store.movements[i].ProductID == productID {
			list = append(list, cloneMovement(r.store.movements[i]))
		}
	}
	return paginate(list, limit, offset), nil
}

// ListByReference lista los movimientos de una operación en orden de creación.
func (r *StockMovementRepo) ListByReference(referenceID string) ([]*entity.StockMovement, error) {
	defer r.lock()()
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ReferenceID == referenceID {
			list = append(list, cloneMovement(m))
		}
	}
	return list, nil
}

// SumByProduct devuelve Σ(entradas) − Σ(salidas) del producto.
func (r *StockMovementRepo) SumByProduct(productID string) (int, error) {
	defer r.lock()()
	sum := 0
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			continue
		}
		if m.Type == entity.MovementTypeIN {
			sum += m.Quantity
		} else {
			sum -= m.Quantity
		}
	}
	return sum, nil
}
