package remote

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/arnold/visiongoals/internal/models"
)

// row is the snake_case shape of the remote goals table.
type row struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Progress    int        `json:"progress"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *timestamp `json:"completed_at"`
	CreatedAt   timestamp  `json:"created_at"`
	UpdatedAt   timestamp  `json:"updated_at"`
}

func toRow(g models.Goal) row {
	var completedAt *timestamp
	if g.CompletedAt != nil {
		completedAt = &timestamp{*g.CompletedAt}
	}
	return row{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Category:    string(g.Category),
		Progress:    g.Progress,
		IsCompleted: g.IsCompleted,
		CompletedAt: completedAt,
		CreatedAt:   timestamp{g.CreatedAt},
		UpdatedAt:   timestamp{g.UpdatedAt},
	}
}

// goal converts a remote row, repairing completion fields that disagree with
// progress so pulled data keeps the local invariants.
func (r row) goal() models.Goal {
	g := models.Goal{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    models.Category(r.Category),
		Progress:    r.Progress,
		IsCompleted: r.Progress == models.ProgressMax,
		CreatedAt:   normalize(r.CreatedAt.Time),
		UpdatedAt:   normalize(r.UpdatedAt.Time),
	}
	if !g.Category.Valid() {
		g.Category = models.CategoryOther
	}
	if g.IsCompleted {
		completedAt := g.UpdatedAt
		if r.CompletedAt != nil {
			completedAt = normalize(r.CompletedAt.Time)
		}
		g.CompletedAt = &completedAt
	}
	return g
}

func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// timestamp accepts both timestamptz values and zone-less timestamp columns,
// which PostgREST renders without an offset. Zone-less values are read as UTC.
type timestamp struct {
	time.Time
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("timestamp %s: %w", b, err)
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range zonelessLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp %q: unrecognised format", raw)
}
