package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.DonationRepository = (*DonationRepo)(nil)

const donationColumns = `id, donor_id, date, kind, total_cash_value, status, notes, created_at, created_by, processed_at, processed_by`

// DonationRepo implementación sobre PostgreSQL (usable con pool o tx).
type DonationRepo struct {
	q Querier
}

// NewDonationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDonationRepository(q Querier) *DonationRepo {
	return &DonationRepo{q: q}
}

func scanDonation(row pgx.Row) (*entity.Donation, error) {
	var d entity.Donation
	var processedBy *string
	err := row.Scan(
		&d.ID, &d.DonorID, &d.Date, &d.Kind, &d.TotalCashValue, &d.Status, &d.Notes,
		&d.CreatedAt, &d.CreatedBy, &d.ProcessedAt, &processedBy,
	)
	if err != nil {
		return nil, err
	}
	if processedBy != nil {
		d.ProcessedBy = *processedBy
	}
	return &d, nil
}

// Create persiste la cabecera de una donación.
func (r *DonationRepo) Create(donation *entity.Donation) error {
	query := `
		INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	processedBy := (*string)(nil)
	if donation.ProcessedBy != "" {
		processedBy = &donation.ProcessedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		donation.ID, donation.DonorID, donation.Date, donation.Kind, donation.TotalCashValue,
		donation.Status, donation.Notes, donation.CreatedAt, donation.CreatedBy,
		donation.ProcessedAt, processedBy,
	)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// CreateItem persiste un item de donación.
func (r *DonationRepo) CreateItem(item *entity.DonationItem) error {
	query := `
		INSERT INTO donation_items (id, donation_id, category_label, description, quantity, cash_amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.DonationID, item.CategoryLabel, item.Description, item.Quantity, item.CashAmount,
	)
	if err != nil {
		return fmt.Errorf("insert donation item: %w", err)
	}
	return nil
}

// GetByID obtiene una donación por ID.
func (r *DonationRepo) GetByID(id string) (*entity.Donation, error) {
	d, err := scanDonation(r.q.QueryRow(context.Background(),
		`SELECT `+donationColumns+` FROM donations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donation: %w", err)
	}
	return d, nil
}

// GetForUpdate obtiene la donación y bloquea la fila (SELECT FOR UPDATE):
// Process y Cancel concurrentes sobre la misma donación se serializan aquí.
func (r *DonationRepo) GetForUpdate(id string) (*entity.Donation, error) {
	d, err := scanDonation(r.q.QueryRow(context.Background(),
		`SELECT `+donationColumns+` FROM donations WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donation for update: %w", err)
	}
	return d, nil
}

// ListItems lista los items de una donación.
func (r *DonationRepo) ListItems(donationID string) ([]*entity.DonationItem, error) {
	query := `
		SELECT id, donation_id, category_label, description, quantity, cash_amount
		FROM donation_items WHERE donation_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, donationID)
	if err != nil {
		return nil, fmt.Errorf("list donation items: %w", err)
	}
	defer rows.Close()
	var list []*entity.DonationItem
	for rows.Next() {
		var it entity.DonationItem
		if err := rows.Scan(&it.ID, &it.DonationID, &it.CategoryLabel, &it.Description, &it.Quantity, &it.CashAmount); err != nil {
			return nil, fmt.Errorf("scan donation item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado y estampa quién procesó y cuándo.
func (r *DonationRepo) UpdateStatus(id, status, processedBy string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE donations SET status = $2, processed_at = $3, processed_by = $4 WHERE id = $1`,
		id, status, time.Now(), processedBy,
	)
	if err != nil {
		return fmt.Errorf("update donation status: %w", err)
	}
	return nil
}

// ListByDonor lista donaciones de un donante.
func (r *DonationRepo) ListByDonor(donorID string, limit, offset int) ([]*entity.Donation, error) {
	query := `
		SELECT ` + donationColumns + ` FROM donations
		WHERE donor_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	return r.listDonations(query, donorID, limit, offset)
}

// List lista donaciones con paginación.
func (r *DonationRepo) List(limit, offset int) ([]*entity.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations ORDER BY date DESC LIMIT $1 OFFSET $2`
	return r.listDonations(query, limit, offset)
}

func (r *DonationRepo) listDonations(query string, args ...any) ([]*entity.Donation, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// DeleteItems elimina los items de una donación (solo desde Cancel).
func (r *DonationRepo) DeleteItems(donationID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM donation_items WHERE donation_id = $1`, donationID)
	if err != nil {
		return fmt.Errorf("delete donation items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una donación (solo desde Cancel).
func (r *DonationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}
	return nil
}
