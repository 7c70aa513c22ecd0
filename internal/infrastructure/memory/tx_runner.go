package memory

import (
	"context"

	"github.com/jhoicas/donaciones-api/internal/application/catalog"
	"github.com/jhoicas/donaciones-api/internal/application/distribution"
	"github.com/jhoicas/donaciones-api/internal/application/donation"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

// Ensure TxRunner implements the runners of the three pipelines.
var _ catalog.TxRunner = (*TxRunner)(nil)
var _ donation.TxRunner = (*TxRunner)(nil)
var _ distribution.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks como transacciones sobre el store: toma el mutex
// global, captura un snapshot y lo restaura si fn devuelve error. Mientras la
// tx corre ningún otro llamador ve estado intermedio.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) inTx(fn func() error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.take()
	if err := fn(); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// Run ejecuta fn como transacción con los repos del catálogo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(func() error {
		return fn(
			&StockMovementRepo{session{store: r.store, tx: true}},
			&ProductRepo{session{store: r.store, tx: true}},
		)
	})
}

// RunDonation ejecuta fn como transacción con los repos del pipeline de donaciones.
func (r *TxRunner) RunDonation(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	donationRepo repository.DonationRepository,
) error) error {
	return r.inTx(func() error {
		return fn(
			&StockMovementRepo{session{store: r.store, tx: true}},
			&ProductRepo{session{store: r.store, tx: true}},
			&CategoryRepo{session{store: r.store, tx: true}},
			&DonationRepo{session{store: r.store, tx: true}},
		)
	})
}

// RunDistribution ejecuta fn como transacción con los repos del pipeline de distribución.
func (r *TxRunner) RunDistribution(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	distributionRepo repository.DistributionRepository,
	beneficiaryRepo repository.BeneficiaryRepository,
) error) error {
	return r.inTx(func() error {
		return fn(
			&StockMovementRepo{session{store: r.store, tx: true}},
			&ProductRepo{session{store: r.store, tx: true}},
			&DistributionRepo{session{store: r.store, tx: true}},
			&BeneficiaryRepo{session{store: r.store, tx: true}},
		)
	})
}
