package donation

import (
	"context"

	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que toca el pipeline de donaciones. Process y Cancel mutan
// varias filas (donación, productos, movimientos) que deben cambiar juntas.
type TxRunner interface {
	RunDonation(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		donationRepo repository.DonationRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de una donación procesada.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, donation *entity.Donation, donor *entity.Donor, items []*entity.DonationItem) ([]byte, error)
}
