package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/renacer/clinica-api/internal/application/analytics"
	"github.com/renacer/clinica-api/internal/application/dto"
)

// DashboardHandler expone el resumen administrativo del mes en curso.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary devuelve pacientes activos, ingresos, pagos, gastos y saldo del mes.
// GET /api/dashboard
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}
