package distribution

import (
	"context"

	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que toca el pipeline de distribución. Register y Cancel mutan
// items, movimientos y el contador del beneficiario como una sola unidad.
type TxRunner interface {
	RunDistribution(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		distributionRepo repository.DistributionRepository,
		beneficiaryRepo repository.BeneficiaryRepository,
	) error) error
}
