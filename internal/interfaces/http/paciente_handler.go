package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/application/pacientes"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/internal/domain/entity"
	"github.com/renacer/clinica-api/pkg/validate"
)

// maxFotoBytes límite del archivo de foto (5 MB).
const maxFotoBytes = 5 << 20

// PacienteHandler maneja las peticiones HTTP de pacientes y sus familiares.
type PacienteHandler struct {
	uc         *pacientes.UseCase
	familiarUC *pacientes.FamiliarUseCase
	store      billing.ObjectStore
}

// NewPacienteHandler construye el handler.
func NewPacienteHandler(uc *pacientes.UseCase, familiarUC *pacientes.FamiliarUseCase, store billing.ObjectStore) *PacienteHandler {
	return &PacienteHandler{uc: uc, familiarUC: familiarUC, store: store}
}

// puedeVerPaciente: un usuario familiar solo accede a su propio paciente.
func puedeVerPaciente(c *fiber.Ctx, pacienteID string) bool {
	return GetRole(c) != entity.RoleFamiliar || GetPacienteID(c) == pacienteID
}

// Create da de alta un paciente con su ingreso inicial (una sola transacción).
// POST /api/pacientes
func (h *PacienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePacienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	paciente, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrDocumentoExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DOCUMENTO_EXISTS", Message: "ya existe un paciente con ese documento"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(paciente)
}

// List lista pacientes con filtro por estado y búsqueda por nombre o documento.
// GET /api/pacientes
func (h *PacienteHandler) List(c *fiber.Ctx) error {
	var in dto.ListPacientesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	in.DefaultPage()
	list, err := h.uc.List(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID devuelve el detalle del paciente con ingresos y familiares.
// GET /api/pacientes/:id
func (h *PacienteHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !puedeVerPaciente(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propio paciente"})
	}
	detail, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(detail)
}

// Update edita los datos básicos del paciente.
// PUT /api/pacientes/:id
func (h *PacienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePacienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	paciente, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(paciente)
}

// Salida registra el egreso: cierra el ingreso abierto y marca el paciente
// inactivo en la misma transacción.
// POST /api/pacientes/:id/salida
func (h *PacienteHandler) Salida(c *fiber.Ctx) error {
	var in dto.SalidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	paciente, err := h.uc.Salida(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		if err == domain.ErrPacienteInactivo || err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el paciente no tiene un ingreso abierto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(paciente)
}

// Reingreso reactiva un paciente inactivo abriendo un nuevo ingreso.
// POST /api/pacientes/:id/reingreso
func (h *PacienteHandler) Reingreso(c *fiber.Ctx) error {
	var in dto.ReingresoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	paciente, err := h.uc.Reingreso(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		if err == domain.ErrIngresoAbierto {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INGRESO_ABIERTO", Message: "el paciente ya tiene un ingreso abierto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(paciente)
}

// UploadFoto sube la foto del paciente al almacenamiento de objetos y guarda la URL.
// POST /api/pacientes/:id/foto (multipart, campo "foto")
func (h *PacienteHandler) UploadFoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("foto")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo multipart 'foto' requerido"})
	}
	if fileHeader.Size > maxFotoBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "la foto supera el tamaño máximo (5 MB)"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	url, err := h.store.Upload(c.Context(), "pacientes", fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "no se pudo subir la foto"})
	}
	if err := h.uc.SetFoto(c.Context(), c.Params("id"), url); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"foto_url": url})
}

// ── Familiares ────────────────────────────────────────────────────────────────

// CreateFamiliar agrega un contacto familiar al paciente.
// POST /api/pacientes/:id/familiares
func (h *PacienteHandler) CreateFamiliar(c *fiber.Ctx) error {
	var in dto.CreateFamiliarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	familiar, err := h.familiarUC.Create(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(familiar)
}

// ListFamiliares lista los contactos del paciente.
// GET /api/pacientes/:id/familiares
func (h *PacienteHandler) ListFamiliares(c *fiber.Ctx) error {
	id := c.Params("id")
	if !puedeVerPaciente(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propio paciente"})
	}
	list, err := h.familiarUC.ListByPaciente(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// UpdateFamiliar edita un contacto familiar.
// PUT /api/familiares/:id
func (h *PacienteHandler) UpdateFamiliar(c *fiber.Ctx) error {
	var in dto.UpdateFamiliarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	familiar, err := h.familiarUC.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familiar no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(familiar)
}

// DeleteFamiliar elimina un contacto familiar.
// DELETE /api/familiares/:id
func (h *PacienteHandler) DeleteFamiliar(c *fiber.Ctx) error {
	if err := h.familiarUC.Delete(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "familiar no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
