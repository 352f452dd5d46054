package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/seraphine/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del catálogo.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (product_count, low_stock_count, stock_value_cost,
// stock_value_sale, potential_margin, low_stock[10]).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return unauthorized(c)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), organizationID)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(summary)
}
