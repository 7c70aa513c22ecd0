package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/donaciones-api/internal/application/dto"
	"github.com/jhoicas/donaciones-api/internal/application/reconcile"
	"github.com/jhoicas/donaciones-api/internal/domain"
)

// ReconcileHandler expone la rutina de reconciliación (solo admin).
type ReconcileHandler struct {
	uc *reconcile.UseCase
}

// NewReconcileHandler construye el handler.
func NewReconcileHandler(uc *reconcile.UseCase) *ReconcileHandler {
	return &ReconcileHandler{uc: uc}
}

// CheckProducts compara el stock de cada producto contra su libro de movimientos.
//
// @Summary      Verificar contadores de stock contra el libro
// @Tags         reconcile
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  reconcile.ProductDrift
// @Router       /api/reconcile/products [get]
func (h *ReconcileHandler) CheckProducts(c *fiber.Ctx) error {
	drifts, err := h.uc.CheckProducts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(drifts), "drifts": drifts})
}

// RepairProducts corrige los contadores de stock que derivaron.
//
// @Summary      Reparar contadores de stock con deriva
// @Tags         reconcile
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   reconcile.ProductDrift
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reconcile/products/repair [post]
func (h *ReconcileHandler) RepairProducts(c *fiber.Ctx) error {
	repaired, err := h.uc.RepairProducts()
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INCONSISTENT_STATE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(repaired), "repaired": repaired})
}

// CheckBeneficiaries compara el contador de cuota de cada beneficiario contra
// sus distribuciones del mes en curso.
//
// @Summary      Verificar contadores de cuota contra el historial
// @Tags         reconcile
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  reconcile.BeneficiaryDrift
// @Router       /api/reconcile/beneficiaries [get]
func (h *ReconcileHandler) CheckBeneficiaries(c *fiber.Ctx) error {
	drifts, err := h.uc.CheckBeneficiaries()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(drifts), "drifts": drifts})
}

// RepairBeneficiaries corrige los contadores de cuota que derivaron.
//
// @Summary      Reparar contadores de cuota con deriva
// @Tags         reconcile
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  reconcile.BeneficiaryDrift
// @Router       /api/reconcile/beneficiaries/repair [post]
func (h *ReconcileHandler) RepairBeneficiaries(c *fiber.Ctx) error {
	repaired, err := h.uc.RepairBeneficiaries()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(repaired), "repaired": repaired})
}
