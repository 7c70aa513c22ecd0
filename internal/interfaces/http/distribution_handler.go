package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/donaciones-api/internal/application/distribution"
	"github.com/jhoicas/donaciones-api/internal/application/dto"
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// DistributionHandler maneja las peticiones HTTP del pipeline de distribución (protegido).
type DistributionHandler struct {
	uc *distribution.UseCase
}

// NewDistributionHandler construye el handler.
func NewDistributionHandler(uc *distribution.UseCase) *DistributionHandler {
	return &DistributionHandler{uc: uc}
}

// Register registra una entrega ya ejecutada: descuenta stock y consume cuota
// en una sola transacción.
//
// @Summary      Registrar entrega a beneficiario
// @Tags         distributions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterDistributionRequest  true  "Beneficiario, fecha e items"
// @Success      201   {object}  dto.DistributionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/distributions [post]
func (h *DistributionHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.RegisterDistributionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := distribution.RegisterInput{
		BeneficiaryID: in.BeneficiaryID,
		Notes:         in.Notes,
		TotalValue:    in.TotalValue,
		ActorID:       userID,
	}
	if in.Date != nil {
		input.Date = *in.Date
	} else {
		input.Date = time.Now()
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, distribution.ItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	d, err := h.uc.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "beneficiary_id activo e items válidos son requeridos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "beneficiario o producto no encontrado"})
		}
		if errors.Is(err, domain.ErrQuotaExceeded) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "QUOTA_EXCEEDED", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDistributionResponse(d))
}

// Cancel elimina una distribución devolviendo el stock con movimientos
// compensatorios y liberando la cuota consumida.
//
// @Summary      Cancelar entrega (restaura stock y cuota)
// @Tags         distributions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la entrega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/distributions/{id} [delete]
func (h *DistributionHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	err := h.uc.Cancel(c.Context(), c.Params("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "distribución no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID obtiene una distribución con sus items.
//
// @Summary      Obtener entrega con sus items
// @Tags         distributions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.DistributionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/distributions/{id} [get]
func (h *DistributionHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "distribución no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items, err := h.uc.ListItems(d.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"distribution": dto.ToDistributionResponse(d),
		"items":        items,
	})
}

// List lista distribuciones; con ?beneficiary_id= filtra por beneficiario.
//
// @Summary      Listar entregas
// @Tags         distributions
// @Security     Bearer
// @Produce      json
// @Param        beneficiary_id  query  string  false  "Filtrar por beneficiario"
// @Param        limit           query  int     false  "Tamaño de página"
// @Param        offset          query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.DistributionResponse
// @Router       /api/distributions [get]
func (h *DistributionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	var (
		list []*entity.Distribution
		err  error
	)
	if beneficiaryID := c.Query("beneficiary_id"); beneficiaryID != "" {
		list, err = h.uc.ListByBeneficiary(beneficiaryID, page.Limit, page.Offset)
	} else {
		list, err = h.uc.List(page.Limit, page.Offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.DistributionResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.ToDistributionResponse(d))
	}
	return c.JSON(out)
}
