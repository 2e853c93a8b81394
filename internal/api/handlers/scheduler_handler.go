package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"postpilot/internal/service"
)

type SchedulerHandler struct {
	s service.SchedulerService
}

func NewSchedulerHandler(service service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{s: service}
}

// RunSweep publishes every due schedule for the current user. A failed
// entry never aborts the sweep; failures are reported in the summary.
func (h *SchedulerHandler) RunSweep(c *fiber.Ctx) error {
	userID := GetUserID(c)

	summary, err := h.s.RunSweep(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotConnected) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "LinkedIn not connected. Please reconnect your account.",
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process schedules",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Processed %d schedules. %d succeeded, %d failed.",
			summary.Processed, summary.Succeeded, summary.Failed),
		"processed": summary.Processed,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	})
}
