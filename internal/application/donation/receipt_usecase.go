package donation

import (
	"context"

	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una donación procesada.
type ReceiptUseCase struct {
	donationRepo repository.DonationRepository
	donorRepo    repository.DonorRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso del comprobante.
func NewReceiptUseCase(
	donationRepo repository.DonationRepository,
	donorRepo repository.DonorRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{donationRepo: donationRepo, donorRepo: donorRepo, generator: generator}
}

// Generate devuelve los bytes del PDF. Solo donaciones procesadas tienen
// comprobante: una promesa pendiente aún no movió stock.
func (uc *ReceiptUseCase) Generate(ctx context.Context, donationID string) ([]byte, error) {
	d, err := uc.donationRepo.GetByID(donationID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.Status != entity.DonationStatusProcessed {
		return nil, domain.ErrConflict
	}
	donor, err := uc.donorRepo.GetByID(d.DonorID)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.donationRepo.ListItems(donationID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateReceipt(ctx, d, donor, items)
}
