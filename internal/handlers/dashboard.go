package handlers

import (
	"etude/internal/services/dashboard"
	"etude/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) GetOfficeDashboard(c *fiber.Ctx) error {
	d, err := h.svc.GetOfficeDashboard(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("dashboard query failed")
		return response.ServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard retrieved", d)
}
