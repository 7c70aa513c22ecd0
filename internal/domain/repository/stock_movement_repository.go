package repository

import "github.com/jhoicas/donaciones-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos. Deliberadamente no expone Update ni Delete: el libro es
// append-only y revertir significa insertar un movimiento compensatorio.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct lista movimientos de un producto, más recientes primero.
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	// ListByReference lista los movimientos causados por una operación (donación,
	// distribución o ajuste), en orden de creación.
	ListByReference(referenceID string) ([]*entity.StockMovement, error)
	// SumByProduct devuelve Σ(entradas) − Σ(salidas) del producto (reconciliación).
	SumByProduct(productID string) (int, error)
}
