package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dominion-roster/internal/api/dto"
	"github.com/spec-kit/dominion-roster/internal/service"
)

// AdvisoryHandler exposes the roster analysis endpoint.
type AdvisoryHandler struct {
	advisory *service.AdvisoryService
	roster   *service.RosterService
}

// NewAdvisoryHandler constructs handler.
func NewAdvisoryHandler(advisoryService *service.AdvisoryService, roster *service.RosterService) *AdvisoryHandler {
	return &AdvisoryHandler{advisory: advisoryService, roster: roster}
}

// Analyze POST /advisory/analyze.
func (h *AdvisoryHandler) Analyze(c *fiber.Ctx) error {
	text, err := h.advisory.Analyze(c.Context(), h.roster.Members())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AnalysisResponse{Analysis: text}})
}
