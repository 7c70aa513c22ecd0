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

var _ repository.DistributionRepository = (*DistributionRepo)(nil)

const distributionColumns = `id, beneficiary_id, date, status, notes, total_value, created_at, created_by`

// DistributionRepo implementación sobre PostgreSQL (usable con pool o tx).
type DistributionRepo struct {
	q Querier
}

// NewDistributionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDistributionRepository(q Querier) *DistributionRepo {
	return &DistributionRepo{q: q}
}

func scanDistribution(row pgx.Row) (*entity.Distribution, error) {
	var d entity.Distribution
	err := row.Scan(
		&d.ID, &d.BeneficiaryID, &d.Date, &d.Status, &d.Notes, &d.TotalValue,
		&d.CreatedAt, &d.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste la cabecera de una distribución.
func (r *DistributionRepo) Create(distribution *entity.Distribution) error {
	query := `
		INSERT INTO distributions (` + distributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		distribution.ID, distribution.BeneficiaryID, distribution.Date, distribution.Status,
		distribution.Notes, distribution.TotalValue, distribution.CreatedAt, distribution.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert distribution: %w", err)
	}
	return nil
}

// CreateItem persiste un item de la distribución.
func (r *DistributionRepo) CreateItem(item *entity.DistributionItem) error {
	query := `
		INSERT INTO distribution_items (id, distribution_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.DistributionID, item.ProductID, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert distribution item: %w", err)
	}
	return nil
}

// GetByID obtiene una distribución por ID.
func (r *DistributionRepo) GetByID(id string) (*entity.Distribution, error) {
	d, err := scanDistribution(r.q.QueryRow(context.Background(),
		`SELECT `+distributionColumns+` FROM distributions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distribution: %w", err)
	}
	return d, nil
}

// ListItems obtiene los items de una distribución.
func (r *DistributionRepo) ListItems(distributionID string) ([]*entity.DistributionItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, distribution_id, product_id, quantity
		 FROM distribution_items WHERE distribution_id = $1 ORDER BY id`, distributionID)
	if err != nil {
		return nil, fmt.Errorf("list distribution items: %w", err)
	}
	defer rows.Close()
	var items []*entity.DistributionItem
	for rows.Next() {
		var it entity.DistributionItem
		if err := rows.Scan(&it.ID, &it.DistributionID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan distribution item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *DistributionRepo) listDistributions(query string, args ...any) ([]*entity.Distribution, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list distributions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Distribution
	for rows.Next() {
		d, err := scanDistribution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan distribution: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListByBeneficiary lista distribuciones de un beneficiario, recientes primero.
func (r *DistributionRepo) ListByBeneficiary(beneficiaryID string, limit, offset int) ([]*entity.Distribution, error) {
	return r.listDistributions(
		`SELECT `+distributionColumns+` FROM distributions
		 WHERE beneficiary_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`,
		beneficiaryID, limit, offset)
}

// List lista distribuciones con paginación, recientes primero.
func (r *DistributionRepo) List(limit, offset int) ([]*entity.Distribution, error) {
	return r.listDistributions(
		`SELECT `+distributionColumns+` FROM distributions
		 ORDER BY date DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// SumQuantityByBeneficiary suma las cantidades entregadas al beneficiario con
// fecha en [from, to). Dentro de una tx con la fila del beneficiario bloqueada,
// esta suma es la lectura autoritativa de la cuota consumida.
func (r *DistributionRepo) SumQuantityByBeneficiary(beneficiaryID string, from, to time.Time) (int, error) {
	var sum int
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(di.quantity), 0)
		FROM distribution_items di
		JOIN distributions d ON d.id = di.distribution_id
		WHERE d.beneficiary_id = $1 AND d.date >= $2 AND d.date < $3`,
		beneficiaryID, from, to,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum distributed quantity: %w", err)
	}
	return sum, nil
}

// DeleteItems elimina los items de una distribución (solo desde Cancel).
func (r *DistributionRepo) DeleteItems(distributionID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM distribution_items WHERE distribution_id = $1`, distributionID)
	if err != nil {
		return fmt.Errorf("delete distribution items: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una distribución (solo desde Cancel).
func (r *DistributionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM distributions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete distribution: %w", err)
	}
	return nil
}
