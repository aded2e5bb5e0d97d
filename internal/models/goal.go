package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ProgressMin  = 0
	ProgressMax  = 100
	ProgressStep = 5
)

type Goal struct {
	ID          uuid.UUID  `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Category    Category   `json:"category" yaml:"category"`
	Progress    int        `json:"progress" yaml:"progress"`
	IsCompleted bool       `json:"isCompleted" yaml:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// Now is the timestamp source for goal mutations. Millisecond precision in UTC
// keeps stored timestamps identical across a JSON round trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewGoal builds a fresh, incomplete goal with a generated ID.
func NewGoal(title, description string, category Category, now time.Time) Goal {
	return Goal{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Category:    category,
		Progress:    ProgressMin,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetProgress updates progress and keeps IsCompleted/CompletedAt consistent:
// CompletedAt is stamped when the goal reaches 100 and cleared when it leaves.
func (g *Goal) SetProgress(progress int, now time.Time) {
	completed := progress == ProgressMax

	switch {
	case completed && (!g.IsCompleted || g.CompletedAt == nil):
		g.CompletedAt = &now
	case !completed:
		g.CompletedAt = nil
	}

	g.Progress = progress
	g.IsCompleted = completed
	g.UpdatedAt = now
}

// Edit applies the non-nil fields of an edit and refreshes UpdatedAt.
func (g *Goal) Edit(req UpdateGoalRequest, now time.Time) {
	if req.Title != nil {
		g.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.Category != nil {
		g.Category = Category(*req.Category)
	}
	g.UpdatedAt = now
}

// Consistent reports whether the completion fields agree with progress.
func (g Goal) Consistent() bool {
	if g.IsCompleted != (g.Progress == ProgressMax) {
		return false
	}
	return g.IsCompleted == (g.CompletedAt != nil)
}

// ValidProgress reports whether p is on the 0..100 slider in steps of 5.
func ValidProgress(p int) bool {
	return p >= ProgressMin && p <= ProgressMax && p%ProgressStep == 0
}

// Goal DTOs
type CreateGoalRequest struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required,category"`
}

type UpdateGoalRequest struct {
	Title       *string `json:"title" validate:"omitempty,notblank"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,category"`
}

type ProgressRequest struct {
	Progress *int `json:"progress" validate:"required,progressstep"`
}

type GoalStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Average   int `json:"averageProgress"`
}

// Stats summarises a collection for the list view header.
func Stats(goals []Goal) GoalStats {
	stats := GoalStats{Total: len(goals)}
	if len(goals) == 0 {
		return stats
	}
	sum := 0
	for _, g := range goals {
		sum += g.Progress
		if g.IsCompleted {
			stats.Completed++
		}
	}
	stats.Average = sum / len(goals)
	return stats
}
