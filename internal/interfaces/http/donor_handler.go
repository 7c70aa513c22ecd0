package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/donaciones-api/internal/application/dto"
	"github.com/jhoicas/donaciones-api/internal/application/usecase"
	"github.com/jhoicas/donaciones-api/internal/domain"
)

// DonorHandler maneja las peticiones HTTP de donantes (protegido).
type DonorHandler struct {
	uc *usecase.DonorUseCase
}

// NewDonorHandler construye el handler.
func NewDonorHandler(uc *usecase.DonorUseCase) *DonorHandler {
	return &DonorHandler{uc: uc}
}

// Create crea un donante.
//
// @Summary      Crear donante
// @Tags         donors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDonorRequest  true  "Datos del donante"
// @Success      201   {object}  dto.DonorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/donors [post]
func (h *DonorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDonorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	donor, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(donor)
}

// GetByID obtiene un donante.
//
// @Summary      Obtener donante por ID
// @Tags         donors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del donante"
// @Success      200  {object}  dto.DonorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donors/{id} [get]
func (h *DonorHandler) GetByID(c *fiber.Ctx) error {
	donor, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donante no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(donor)
}

// Update actualiza datos de contacto del donante.
//
// @Summary      Actualizar donante
// @Tags         donors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del donante"
// @Param        body  body  dto.UpdateDonorRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DonorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/donors/{id} [put]
func (h *DonorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDonorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	donor, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donante no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(donor)
}

// List lista donantes.
//
// @Summary      Listar donantes
// @Tags         donors
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.DonorResponse
// @Router       /api/donors [get]
func (h *DonorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	donors, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(donors)
}

// Delete elimina un donante.
//
// @Summary      Eliminar donante
// @Tags         donors
// @Security     Bearer
// @Param        id  path  string  true  "ID del donante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donors/{id} [delete]
func (h *DonorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donante no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
