package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnold/visiongoals/internal/services"
	"github.com/arnold/visiongoals/internal/storage"
)

type Handler struct {
	goals *services.GoalService
	sync  *services.SyncService
	store *storage.LocalStore
	log   *zap.Logger
}

func New(goals *services.GoalService, sync *services.SyncService, store *storage.LocalStore, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{goals: goals, sync: sync, store: store, log: log}
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func parseGoalID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}
	return id, nil
}

// parseBody decodes and validates a request body, writing the 400 response
// itself. ok is false when the handler should return err as is.
func parseBody(c *fiber.Ctx, out interface{}) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}
	return true, nil
}

func (h *Handler) goalError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, services.ErrGoalNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Goal not found"})
	case errors.Is(err, services.ErrBlankTitle),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidProgress):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		h.log.Error("goal request failed", zap.String("action", action), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to " + action,
		})
	}
}
