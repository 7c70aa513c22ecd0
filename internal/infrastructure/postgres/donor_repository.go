package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.DonorRepository = (*DonorRepo)(nil)

const donorColumns = `id, name, document, email, phone, address, created_at, updated_at`

// DonorRepo implementación sobre PostgreSQL (usable con pool o tx).
type DonorRepo struct {
	q Querier
}

// NewDonorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDonorRepository(q Querier) *DonorRepo {
	return &DonorRepo{q: q}
}

func scanDonor(row pgx.Row) (*entity.Donor, error) {
	var d entity.Donor
	err := row.Scan(&d.ID, &d.Name, &d.Document, &d.Email, &d.Phone, &d.Address, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste un donante.
func (r *DonorRepo) Create(donor *entity.Donor) error {
	query := `
		INSERT INTO donors (` + donorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		donor.ID, donor.Name, donor.Document, donor.Email, donor.Phone, donor.Address,
		donor.CreatedAt, donor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert donor: %w", err)
	}
	return nil
}

// GetByID obtiene un donante por ID.
func (r *DonorRepo) GetByID(id string) (*entity.Donor, error) {
	d, err := scanDonor(r.q.QueryRow(context.Background(),
		`SELECT `+donorColumns+` FROM donors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donor: %w", err)
	}
	return d, nil
}

// Update actualiza un donante.
func (r *DonorRepo) Update(donor *entity.Donor) error {
	query := `
		UPDATE donors SET name = $2, document = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		donor.ID, donor.Name, donor.Document, donor.Email, donor.Phone, donor.Address, donor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	return nil
}

// List lista donantes con paginación.
func (r *DonorRepo) List(limit, offset int) ([]*entity.Donor, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+donorColumns+` FROM donors ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Donor
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete elimina un donante por ID.
func (r *DonorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM donors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete donor: %w", err)
	}
	return nil
}
