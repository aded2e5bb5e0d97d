package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/remote"
	"github.com/arnold/visiongoals/internal/services"
	"github.com/arnold/visiongoals/internal/storage"
)

func notConfigured(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Supabase Not Configured",
		"message": "Please add your Supabase credentials to enable cloud storage.",
	})
}

func (h *Handler) GetRemoteConfig(c *fiber.Ctx) error {
	creds, err := h.store.Credentials()
	if err != nil && !errors.Is(err, storage.ErrUnavailable) {
		h.log.Error("reading remote credentials failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read cloud settings",
		})
	}
	return c.JSON(remote.Status(creds, models.Now()))
}

func (h *Handler) SaveRemoteConfig(c *fiber.Ctx) error {
	var req models.RemoteConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Missing Credentials",
			"message": validationMessage(err),
		})
	}

	creds := storage.Credentials{URL: req.URL, Key: req.Key}
	if err := h.store.SetCredentials(creds); err != nil {
		h.log.Error("saving remote credentials failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save cloud settings",
		})
	}

	status := remote.Status(creds, models.Now())
	h.log.Info("remote credentials saved", zap.String("url", status.URL), zap.String("role", status.KeyRole))
	return c.JSON(fiber.Map{
		"status":  status,
		"message": "Your Supabase credentials have been saved.",
	})
}

func (h *Handler) DeleteRemoteConfig(c *fiber.Ctx) error {
	if err := h.store.ClearCredentials(); err != nil {
		h.log.Error("clearing remote credentials failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear cloud settings",
		})
	}
	return c.JSON(fiber.Map{"message": "Cloud settings removed."})
}

// PushToRemote backs every local goal up to the cloud table.
func (h *Handler) PushToRemote(c *fiber.Ctx) error {
	report, err := h.sync.Push(c.UserContext())
	if errors.Is(err, services.ErrRemoteNotConfigured) {
		return notConfigured(c)
	}
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Error Saving Goals",
		})
	}

	if !report.OK {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Error Saving Goals",
			"message": "There was an error saving your goals to the cloud.",
			"report":  report,
		})
	}
	return c.JSON(fiber.Map{
		"message": "Your goals have been successfully backed up to Supabase.",
		"report":  report,
	})
}

// PullFromRemote replaces the local collection with the cloud copy.
func (h *Handler) PullFromRemote(c *fiber.Ctx) error {
	res, err := h.sync.Pull(c.UserContext())
	switch {
	case errors.Is(err, services.ErrRemoteNotConfigured):
		return notConfigured(c)
	case err != nil:
		h.log.Error("pull failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Error Loading Goals",
			"message": "There was an error loading your goals from the cloud.",
		})
	}

	if !res.Replaced {
		return c.JSON(fiber.Map{
			"result":  res,
			"message": "No goals were found in your cloud storage.",
		})
	}
	return c.JSON(fiber.Map{
		"result":  res,
		"goals":   h.goals.Snapshot(),
		"message": "Your goals have been restored from Supabase.",
	})
}

func (h *Handler) DeleteRemoteGoal(c *fiber.Ctx) error {
	id, err := parseGoalID(c)
	if err != nil {
		return err
	}

	err = h.sync.RemoveRemote(c.UserContext(), id)
	switch {
	case errors.Is(err, services.ErrRemoteNotConfigured):
		return notConfigured(c)
	case err != nil:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to delete goal from the cloud",
		})
	}
	return c.JSON(fiber.Map{"message": "The goal has been removed from the cloud."})
}
