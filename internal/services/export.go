package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arnold/visiongoals/internal/models"
)

type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ParseExportFormat accepts json (the default for "") and yaml/yml.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f ExportFormat) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// ExportFilename names the download after the export date, e.g.
// goals-2025-01-31.json.
func ExportFilename(now time.Time, format ExportFormat) string {
	return fmt.Sprintf("goals-%s.%s", now.Format("2006-01-02"), format)
}

// EncodeGoals renders goals as an indented document.
func EncodeGoals(goals []models.Goal, format ExportFormat) ([]byte, error) {
	if goals == nil {
		goals = []models.Goal{}
	}
	switch format {
	case FormatYAML:
		return yaml.Marshal(goals)
	default:
		return json.MarshalIndent(goals, "", "  ")
	}
}

// Export renders the current collection and the filename to offer it under.
func (s *GoalService) Export(format ExportFormat) (string, []byte, error) {
	data, err := EncodeGoals(s.Snapshot(), format)
	if err != nil {
		return "", nil, err
	}
	return ExportFilename(s.now(), format), data, nil
}
