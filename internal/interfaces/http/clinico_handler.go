package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/renacer/clinica-api/internal/application/clinico"
	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/pkg/validate"
)

// ClinicoHandler maneja los registros clínicos por paciente: medicamentos,
// fórmulas, seguimientos, visitas y novedades.
type ClinicoHandler struct {
	uc *clinico.UseCase
}

// NewClinicoHandler construye el handler.
func NewClinicoHandler(uc *clinico.UseCase) *ClinicoHandler {
	return &ClinicoHandler{uc: uc}
}

func clinicoError(c *fiber.Ctx, err error) error {
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	if err == domain.ErrPacienteInactivo {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PACIENTE_INACTIVO", Message: "el paciente no está activo"})
	}
	if err == domain.ErrInvalidInput {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// ── Medicamentos ──────────────────────────────────────────────────────────────

// CreateMedicamento asigna un medicamento al paciente.
// POST /api/pacientes/:id/medicamentos
func (h *ClinicoHandler) CreateMedicamento(c *fiber.Ctx) error {
	var in dto.CreateMedicamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateMedicamento(c.Context(), c.Params("id"), in)
	if err != nil {
		return clinicoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMedicamentos lista los medicamentos activos del paciente.
// GET /api/pacientes/:id/medicamentos
func (h *ClinicoHandler) ListMedicamentos(c *fiber.Ctx) error {
	id := c.Params("id")
	if !puedeVerPaciente(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propio paciente"})
	}
	out, err := h.uc.ListMedicamentos(c.Context(), id, c.QueryBool("incluir_inactivos"))
	if err != nil {
		return clinicoError(c, err)
	}
	return c.JSON(out)
}

// DeleteMedicamento desactiva un medicamento (borrado lógico).
// DELETE /api/medicamentos/:id
func (h *ClinicoHandler) DeleteMedicamento(c *fiber.Ctx) error {
	if err := h.uc.DesactivarMedicamento(c.Context(), c.Params("id")); err != nil {
		return clinicoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Fórmulas ──────────────────────────────────────────────────────────────────

// CreateFormula emite una fórmula médica; el médico es el usuario autenticado.
// POST /api/pacientes/:id/formulas
func (h *ClinicoHandler) CreateFormula(c *fiber.Ctx) error {
	var in dto.CreateFormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateFormula(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return clinicoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFormulas lista las fórmulas del paciente.
// GET /api/pacientes/:id/formulas
func (h *ClinicoHandler) ListFormulas(c *fiber.Ctx) error {
	id := c.Params("id")
	if !puedeVerPaciente(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propio paciente"})
	}
	out, err := h.uc.ListFormulas(c.Context(), id, c.QueryBool("incluir_inactivos"))
	if err != nil {
		return clinicoError(c, err)
	}
	return c.JSON(out)
}

// DeleteFormula desactiva una fórmula.
// DELETE /api/formulas/:id
func (h *ClinicoHandler) DeleteFormula(c *fiber.Ctx) error {
	if err := h.uc.DesactivarFormula(c.Context(), c.Params("id")); err != nil {
		return clinicoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Seguimientos ──────────────────────────────────────────────────────────────

// CreateSeguimiento registra una nota de evolución del médico autenticado.
// POST /api/pacientes/:id/seguimientos
func (h *ClinicoHandler) CreateSeguimiento(c *fiber.Ctx) error {
	var in dto.CreateSeguimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateSeguimiento(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return clinicoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSeguimientos lista las notas de evolución del paciente.
// GET /api/pacientes/:id/seguimientos
func (h *ClinicoHandler) ListSeguimientos(c *fiber.Ctx) error {
	id := c.Params("id")
	if !puedeVerPaciente(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propio paciente"})
	}
	out, err := h.uc.ListSeguimientos(c.Context(), id, c.QueryBool("incluir_inactivos"))
	if err != nil {
		return clinicoError(c, err)
	}
	return c.JSON(out)
}

// DeleteSeguimiento desactiva un seguimiento.
// DELETE /api/seguimientos/:id
func (h *ClinicoHandler) DeleteSeguimiento(c *fiber.Ctx) error {
	if err := h.uc.DesactivarSeguimiento(c.Context(), c.Params("id")); err != nil {
		return clinicoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Visitas ───────────────────────────────────────────────────────────────────

// CreateVisita registra la visita de un familiar.
// POST /api/pacientes/:id/visitas
func (h *ClinicoHandler) CreateVisita(c *fiber.Ctx) error {
	var in dto.CreateVisitaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateVisita(c.Context(), c.Params("id"), in)
	if err != nil {
		return clinicoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListVisitas lista las visitas del paciente.
// GET /api/pacientes/:id/visitas
func (h *ClinicoHandler) ListVisitas(c *fiber.Ctx) error {
	id := c.Params("id")
	if !puedeVerPaciente(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propio paciente"})
	}
	out, err := h.uc.ListVisitas(c.Context(), id, c.QueryBool("incluir_inactivos"))
	if err != nil {
		return clinicoError(c, err)
	}
	return c.JSON(out)
}

// DeleteVisita desactiva una visita.
// DELETE /api/visitas/:id
func (h *ClinicoHandler) DeleteVisita(c *fiber.Ctx) error {
	if err := h.uc.DesactivarVisita(c.Context(), c.Params("id")); err != nil {
		return clinicoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Novedades ─────────────────────────────────────────────────────────────────

// CreateNovedad registra una novedad del paciente.
// POST /api/pacientes/:id/novedades
func (h *ClinicoHandler) CreateNovedad(c *fiber.Ctx) error {
	var in dto.CreateNovedadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateNovedad(c.Context(), c.Params("id"), in)
	if err != nil {
		return clinicoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListNovedades lista las novedades del paciente.
// GET /api/pacientes/:id/novedades
func (h *ClinicoHandler) ListNovedades(c *fiber.Ctx) error {
	id := c.Params("id")
	if !puedeVerPaciente(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propio paciente"})
	}
	out, err := h.uc.ListNovedades(c.Context(), id, c.QueryBool("incluir_inactivos"))
	if err != nil {
		return clinicoError(c, err)
	}
	return c.JSON(out)
}

// DeleteNovedad desactiva una novedad.
// DELETE /api/novedades/:id
func (h *ClinicoHandler) DeleteNovedad(c *fiber.Ctx) error {
	if err := h.uc.DesactivarNovedad(c.Context(), c.Params("id")); err != nil {
		return clinicoError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
