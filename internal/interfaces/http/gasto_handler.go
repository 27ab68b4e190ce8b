package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/renacer/clinica-api/internal/application/dto"
	"github.com/renacer/clinica-api/internal/application/gastos"
	"github.com/renacer/clinica-api/internal/domain"
	"github.com/renacer/clinica-api/pkg/validate"
)

// GastoHandler maneja las peticiones HTTP de gastos operativos (solo admin).
type GastoHandler struct {
	uc *gastos.UseCase
}

// NewGastoHandler construye el handler.
func NewGastoHandler(uc *gastos.UseCase) *GastoHandler {
	return &GastoHandler{uc: uc}
}

// Create registra un gasto confirmado.
// POST /api/gastos
func (h *GastoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGastoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	gasto, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "monto o categoría inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(gasto)
}

// List lista gastos; por defecto excluye los eliminados.
// GET /api/gastos
func (h *GastoHandler) List(c *fiber.Ctx) error {
	in := dto.ListGastosRequest{
		Categoria:         c.Query("categoria"),
		IncluirEliminados: c.QueryBool("incluir_eliminados"),
	}
	in.Limit = c.QueryInt("limit")
	in.Offset = c.QueryInt("offset")
	// Las fechas llegan como YYYY-MM-DD
	for q, dst := range map[string]**time.Time{"desde": &in.Desde, "hasta": &in.Hasta} {
		if v := c.Query(q); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: q + " debe tener formato YYYY-MM-DD"})
			}
			*dst = &t
		}
	}
	in.DefaultPage()
	list, err := h.uc.List(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Categorias devuelve la lista fija de categorías de gasto.
// GET /api/gastos/categorias
func (h *GastoHandler) Categorias(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categorias": h.uc.Categorias()})
}

// Eliminar marca un gasto como eliminado (evento "eliminado").
// DELETE /api/gastos/:id
func (h *GastoHandler) Eliminar(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.Eliminar)
}

// Reactivar devuelve un gasto eliminado a confirmado (evento "reactivado").
// POST /api/gastos/:id/reactivar
func (h *GastoHandler) Reactivar(c *fiber.Ctx) error {
	return h.transicion(c, h.uc.Reactivar)
}

func (h *GastoHandler) transicion(c *fiber.Ctx, fn func(ctx context.Context, gastoID, actorID, nota string) (*dto.GastoDetailResponse, error)) error {
	var in notaRequest
	_ = c.BodyParser(&in)
	detail, err := fn(c.Context(), c.Params("id"), GetUserID(c), in.Nota)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gasto no encontrado"})
		}
		if errors.Is(err, domain.ErrTransicionInvalida) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSICION_INVALIDA", Message: "la transición de estado no está permitida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(detail)
}
