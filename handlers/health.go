package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleHealthCheck godoc
// @Summary Health check
// @Tags    Health
// @Success 200 {object} models.MessageResponse
// @Failure 503 {object} models.ErrorResponse
// @Router  /health [get]
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		h.Logger.Warn("health check failed", "err", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "database unavailable"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
