package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/donaciones-api/internal/application/distribution"
	"github.com/jhoicas/donaciones-api/internal/application/dto"
	"github.com/jhoicas/donaciones-api/internal/application/usecase"
	"github.com/jhoicas/donaciones-api/internal/domain"
)

// BeneficiaryHandler maneja las peticiones HTTP de beneficiarios (protegido).
type BeneficiaryHandler struct {
	uc     *usecase.BeneficiaryUseCase
	distUC *distribution.UseCase
}

// NewBeneficiaryHandler construye el handler.
func NewBeneficiaryHandler(uc *usecase.BeneficiaryUseCase, distUC *distribution.UseCase) *BeneficiaryHandler {
	return &BeneficiaryHandler{uc: uc, distUC: distUC}
}

// Create crea un beneficiario.
//
// @Summary      Crear beneficiario
// @Tags         beneficiaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBeneficiaryRequest  true  "Datos del beneficiario"
// @Success      201   {object}  dto.BeneficiaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/beneficiaries [post]
func (h *BeneficiaryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBeneficiaryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y monthly_limit > 0 son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// GetByID obtiene un beneficiario.
//
// @Summary      Obtener beneficiario por ID
// @Tags         beneficiaries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del beneficiario"
// @Success      200  {object}  dto.BeneficiaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beneficiaries/{id} [get]
func (h *BeneficiaryHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "beneficiario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(b)
}

// Update actualiza datos del beneficiario (incluye límite mensual y estado).
//
// @Summary      Actualizar beneficiario
// @Tags         beneficiaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del beneficiario"
// @Param        body  body  dto.UpdateBeneficiaryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BeneficiaryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/beneficiaries/{id} [put]
func (h *BeneficiaryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBeneficiaryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "beneficiario no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(b)
}

// List lista beneficiarios.
//
// @Summary      Listar beneficiarios
// @Tags         beneficiaries
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.BeneficiaryResponse
// @Router       /api/beneficiaries [get]
func (h *BeneficiaryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetQuota devuelve el saldo de cuota del mes calendario en curso, calculado
// en vivo desde el historial de distribuciones.
//
// @Summary      Consultar cuota mensual del beneficiario
// @Tags         beneficiaries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del beneficiario"
// @Success      200  {object}  dto.QuotaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beneficiaries/{id}/quota [get]
func (h *BeneficiaryHandler) GetQuota(c *fiber.Ctx) error {
	info, err := h.distUC.GetBeneficiaryQuota(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "beneficiario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.QuotaResponse{
		BeneficiaryID: info.BeneficiaryID,
		MonthlyLimit:  info.MonthlyLimit,
		Used:          info.Used,
		Remaining:     info.Remaining,
	})
}
