package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/arnold/visiongoals/internal/services"
)

// ExportGoals serves the full collection as a downloadable file named after
// today's date. ?format=yaml switches the rendering.
func (h *Handler) ExportGoals(c *fiber.Ctx) error {
	format, err := services.ParseExportFormat(c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	filename, data, err := h.goals.Export(format)
	if err != nil {
		h.log.Error("export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export goals",
		})
	}

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, format.ContentType()+"; charset=utf-8")
	return c.Send(data)
}
