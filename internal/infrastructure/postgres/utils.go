package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation código SQLSTATE de violación de constraint único.
const uniqueViolation = "23505"

// isUniqueViolation reconoce la violación de unicidad de PostgreSQL. Los repos
// la traducen al error de dominio correspondiente (ErrDuplicate para
// categorías, ErrEmailAlreadyExists para usuarios).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
