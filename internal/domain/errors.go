package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrQuotaExceeded      = errors.New("cuota mensual excedida")
	ErrNotPending         = errors.New("la donación no está pendiente")
	ErrAlreadyProcessed   = errors.New("la donación ya fue procesada")
	ErrInconsistentState  = errors.New("estado inconsistente: requiere atención del operador")
)

// InsufficientStockError lleva el detalle de qué producto no alcanza y por cuánto.
// errors.Is(err, ErrInsufficientStock) sigue funcionando para el mapeo HTTP.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q (%s): solicitado %d, disponible %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// QuotaExceededError lleva el saldo restante de la cuota mensual del beneficiario,
// para que el caller pueda mostrar un mensaje preciso.
type QuotaExceededError struct {
	BeneficiaryID string
	Requested     int
	Remaining     int
	MonthlyLimit  int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("cuota mensual excedida para beneficiario %s: solicitado %d, disponible %d de %d",
		e.BeneficiaryID, e.Requested, e.Remaining, e.MonthlyLimit)
}

func (e *QuotaExceededError) Is(target error) bool { return target == ErrQuotaExceeded }

// InconsistentStateError envuelve el error original cuando un rollback falló
// a mitad de compensación y los contadores pueden haber quedado desalineados.
type InconsistentStateError struct {
	Op    string
	Cause error
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("estado inconsistente en %s: %v", e.Op, e.Cause)
}

func (e *InconsistentStateError) Is(target error) bool { return target == ErrInconsistentState }

func (e *InconsistentStateError) Unwrap() error { return e.Cause }
