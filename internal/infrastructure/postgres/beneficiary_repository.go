package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
	"github.com/jhoicas/donaciones-api/internal/domain/repository"
)

var _ repository.BeneficiaryRepository = (*BeneficiaryRepo)(nil)

const beneficiaryColumns = `id, name, document, phone, address, family_size, monthly_limit, used_this_period, status, created_at, updated_at`

// BeneficiaryRepo implementación sobre PostgreSQL (usable con pool o tx).
type BeneficiaryRepo struct {
	q Querier
}

// NewBeneficiaryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBeneficiaryRepository(q Querier) *BeneficiaryRepo {
	return &BeneficiaryRepo{q: q}
}

func scanBeneficiary(row pgx.Row) (*entity.Beneficiary, error) {
	var b entity.Beneficiary
	err := row.Scan(
		&b.ID, &b.Name, &b.Document, &b.Phone, &b.Address, &b.FamilySize,
		&b.MonthlyLimit, &b.UsedThisPeriod, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un beneficiario.
func (r *BeneficiaryRepo) Create(beneficiary *entity.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (` + beneficiaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		beneficiary.ID, beneficiary.Name, beneficiary.Document, beneficiary.Phone, beneficiary.Address,
		beneficiary.FamilySize, beneficiary.MonthlyLimit, beneficiary.UsedThisPeriod, beneficiary.Status,
		beneficiary.CreatedAt, beneficiary.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert beneficiary: %w", err)
	}
	return nil
}

// GetByID obtiene un beneficiario por ID.
func (r *BeneficiaryRepo) GetByID(id string) (*entity.Beneficiary, error) {
	b, err := scanBeneficiary(r.q.QueryRow(context.Background(),
		`SELECT `+beneficiaryColumns+` FROM beneficiaries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get beneficiary: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el beneficiario y bloquea la fila (SELECT FOR UPDATE):
// dos distribuciones concurrentes contra la misma cuota se serializan aquí.
func (r *BeneficiaryRepo) GetForUpdate(id string) (*entity.Beneficiary, error) {
	b, err := scanBeneficiary(r.q.QueryRow(context.Background(),
		`SELECT `+beneficiaryColumns+` FROM beneficiaries WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get beneficiary for update: %w", err)
	}
	return b, nil
}

// Update actualiza datos del beneficiario. No toca used_this_period.
func (r *BeneficiaryRepo) Update(beneficiary *entity.Beneficiary) error {
	query := `
		UPDATE beneficiaries SET name = $2, document = $3, phone = $4, address = $5, family_size = $6,
			monthly_limit = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		beneficiary.ID, beneficiary.Name, beneficiary.Document, beneficiary.Phone, beneficiary.Address,
		beneficiary.FamilySize, beneficiary.MonthlyLimit, beneficiary.Status, beneficiary.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update beneficiary: %w", err)
	}
	return nil
}

// UpdateUsed actualiza solo el contador de cuota (usado por el pipeline de distribución).
func (r *BeneficiaryRepo) UpdateUsed(id string, usedThisPeriod int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE beneficiaries SET used_this_period = $2, updated_at = now() WHERE id = $1`,
		id, usedThisPeriod,
	)
	if err != nil {
		return fmt.Errorf("update beneficiary used: %w", err)
	}
	return nil
}

// List lista beneficiarios con paginación.
func (r *BeneficiaryRepo) List(limit, offset int) ([]*entity.Beneficiary, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+beneficiaryColumns+` FROM beneficiaries ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Beneficiary
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan beneficiary: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
