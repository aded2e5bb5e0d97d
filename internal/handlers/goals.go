package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/services"
)

func GetCategories(c *fiber.Ctx) error {
	return c.JSON(models.Categories)
}

func (h *Handler) GetGoals(c *fiber.Ctx) error {
	category := c.Query("category", models.CategoryAll)
	if category != models.CategoryAll && !models.Category(category).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown category",
		})
	}

	goals := h.goals.List(services.ListFilter{
		Category: category,
		Query:    c.Query("q"),
	})

	return c.JSON(fiber.Map{
		"goals": goals,
		"stats": models.Stats(h.goals.Snapshot()),
	})
}

func (h *Handler) GetGoal(c *fiber.Ctx) error {
	id, err := parseGoalID(c)
	if err != nil {
		return err
	}

	goal, err := h.goals.Get(id)
	if err != nil {
		return h.goalError(c, err, "fetch goal")
	}
	return c.JSON(goal)
}

func (h *Handler) CreateGoal(c *fiber.Ctx) error {
	var req models.CreateGoalRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	goal, err := h.goals.Create(req)
	if err != nil {
		return h.goalError(c, err, "create goal")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"goal":    goal,
		"message": "Your new goal has been saved locally.",
	})
}

func (h *Handler) UpdateGoal(c *fiber.Ctx) error {
	id, err := parseGoalID(c)
	if err != nil {
		return err
	}

	var req models.UpdateGoalRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	goal, err := h.goals.Update(id, req)
	if err != nil {
		return h.goalError(c, err, "update goal")
	}
	return c.JSON(goal)
}

func (h *Handler) SetProgress(c *fiber.Ctx) error {
	id, err := parseGoalID(c)
	if err != nil {
		return err
	}

	var req models.ProgressRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	res, err := h.goals.SetProgress(id, *req.Progress)
	if err != nil {
		return h.goalError(c, err, "update progress")
	}

	resp := fiber.Map{
		"goal":          res.Goal,
		"justCompleted": res.JustCompleted,
	}
	if res.JustCompleted {
		resp["message"] = "Congratulations! You've completed this goal!"
	}
	return c.JSON(resp)
}

func (h *Handler) DeleteGoal(c *fiber.Ctx) error {
	id, err := parseGoalID(c)
	if err != nil {
		return err
	}

	if err := h.goals.Delete(id); err != nil {
		return h.goalError(c, err, "delete goal")
	}
	return c.JSON(fiber.Map{"message": "The goal has been removed."})
}
