package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/pkg/validate"
)

// PagoHandler maneja las peticiones HTTP de pagos.
type PagoHandler struct {
	uc *billing.PagoUseCase
}

// NewPagoHandler construye el handler.
func NewPagoHandler(uc *billing.PagoUseCase) *PagoHandler {
	return &PagoHandler{uc: uc}
}

// Create registra un pago (completado, o pendiente si requiere aprobación).
// POST /api/pagos
func (h *PagoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePagoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pago, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "monto o cuenta inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente o cuenta no encontrados"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(pago)
}

// List lista pagos. Por defecto excluye los borrados; los usuarios familiares
// solo ven los de su paciente.
// GET /api/pagos
func (h *PagoHandler) List(c *fiber.Ctx) error {
	var in dto.ListPagosRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	in.DefaultPage()
	if GetRole(c) == entity.RoleFamiliar {
		in.PacienteID = GetPacienteID(c)
	}
	list, err := h.uc.List(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID devuelve el pago con su historial de auditoría.
// GET /api/pagos/:id
func (h *PagoHandler) GetByID(c *fiber.Ctx) error {
	detail, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !puedeVerPaciente(c, detail.PacienteID) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar pagos de su paciente"})
	}
	return c.JSON(detail)
}

// Aprobar pasa un pago pendiente a completado (evento "aprobado").
// POST /api/pagos/:id/aprobar
func (h *PagoHandler) Aprobar(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.Aprobar)
}

// Borrar elimina lógicamente un pago completado (evento "eliminado").
// DELETE /api/pagos/:id
func (h *PagoHandler) Borrar(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.Borrar)
}

// Reactivar devuelve un pago borrado a completado (evento "reactivado").
// POST /api/pagos/:id/reactivar
func (h *PagoHandler) Reactivar(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.Reactivar)
}

// notaRequest body opcional de las transiciones de pago.
type notaRequest struct {
	Nota string `json:"nota" validate:"omitempty,max=500"`
}

func (h *PagoHandler) transicion(c *fiber.Ctx, fn func(ctx context.Context, pagoID, actorID, nota string) (*dto.PagoDetailResponse, error)) error {
	var in notaRequest
	// el body es opcional: sin cuerpo la nota queda vacía
	_ = c.BodyParser(&in)
	detail, err := fn(c.Context(), c.Params("id"), GetUserID(c), in.Nota)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		if errors.Is(err, domain.ErrTransicionInvalida) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSICION_INVALIDA", Message: "la transición de estado no está permitida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(detail)
}
