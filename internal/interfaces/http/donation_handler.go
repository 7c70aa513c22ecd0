package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/donaciones-api/internal/application/donation"
	"github.com/jhoicas/donaciones-api/internal/application/dto"
	"github.com/jhoicas/donaciones-api/internal/domain"
	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// DonationHandler maneja las peticiones HTTP del pipeline de donaciones (protegido).
type DonationHandler struct {
	uc        *donation.UseCase
	receiptUC *donation.ReceiptUseCase
}

// NewDonationHandler construye el handler.
func NewDonationHandler(uc *donation.UseCase, receiptUC *donation.ReceiptUseCase) *DonationHandler {
	return &DonationHandler{uc: uc, receiptUC: receiptUC}
}

// Register registra una donación prometida (queda pendiente, sin tocar stock).
//
// @Summary      Registrar donación (queda pendiente)
// @Tags         donations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterDonationRequest  true  "Donante, fecha e items"
// @Success      201   {object}  dto.DonationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/donations [post]
func (h *DonationHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.RegisterDonationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := donation.RegisterInput{
		DonorID: in.DonorID,
		Notes:   in.Notes,
		ActorID: userID,
	}
	if in.Date != nil {
		input.Date = *in.Date
	} else {
		input.Date = time.Now()
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, donation.ItemInput{
			CategoryLabel: it.Category,
			Description:   it.Description,
			Quantity:      it.Quantity,
			CashAmount:    it.CashAmount,
		})
	}
	d, err := h.uc.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "donor_id e items válidos son requeridos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donante no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDonationResponse(d))
}

// Process convierte una donación pendiente en stock (exactamente una vez).
//
// @Summary      Procesar donación (convierte items en stock)
// @Tags         donations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la donación"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/donations/{id}/process [post]
func (h *DonationHandler) Process(c *fiber.Ctx) error {
	userID := GetUserID(c)
	err := h.uc.Process(c.Context(), c.Params("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donación no encontrada"})
		}
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PROCESSED", Message: "la donación ya fue procesada"})
		}
		if errors.Is(err, domain.ErrNotPending) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_PENDING", Message: "la donación no está pendiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "donación procesada"})
}

// Cancel elimina una donación. Si ya fue procesada revierte su efecto con
// movimientos compensatorios; aborta si el stock ya fue distribuido.
//
// @Summary      Cancelar donación (revierte stock si fue procesada)
// @Tags         donations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la donación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/donations/{id} [delete]
func (h *DonationHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	err := h.uc.Cancel(c.Context(), c.Params("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donación no encontrada"})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID obtiene una donación con sus items.
//
// @Summary      Obtener donación con sus items
// @Tags         donations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la donación"
// @Success      200  {object}  dto.DonationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donations/{id} [get]
func (h *DonationHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items, err := h.uc.ListItems(d.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"donation": dto.ToDonationResponse(d),
		"items":    dto.ToDonationItemResponses(items),
	})
}

// List lista donaciones; con ?donor_id= filtra por donante.
//
// @Summary      Listar donaciones
// @Tags         donations
// @Security     Bearer
// @Produce      json
// @Param        donor_id  query  string  false  "Filtrar por donante"
// @Param        limit     query  int     false  "Tamaño de página"
// @Param        offset    query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.DonationResponse
// @Router       /api/donations [get]
func (h *DonationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	var (
		donations []*entity.Donation
		err       error
	)
	if donorID := c.Query("donor_id"); donorID != "" {
		donations, err = h.uc.ListByDonor(donorID, page.Limit, page.Offset)
	} else {
		donations, err = h.uc.List(page.Limit, page.Offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]*dto.DonationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, dto.ToDonationResponse(d))
	}
	return c.JSON(out)
}

// Receipt genera el comprobante PDF de una donación procesada.
//
// @Summary      Recibo PDF de una donación procesada
// @Tags         donations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la donación"
// @Success      200  {file}    file
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/donations/{id}/receipt [get]
func (h *DonationHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receiptUC.Generate(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donación no encontrada"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_PROCESSED", Message: "solo las donaciones procesadas tienen comprobante"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
