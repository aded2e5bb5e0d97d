package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/services"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	barWidth   = 20
)

var (
	listCategory string
	listQuery    string
	addCategory  string
	addDesc      string
	exportFormat string
	exportOut    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		goals := d.goals.List(services.ListFilter{Category: listCategory, Query: listQuery})
		stats := models.Stats(d.goals.Snapshot())

		fmt.Println(titleStyle.Render(fmt.Sprintf("Goals  %d/%d completed", stats.Completed, stats.Total)))
		if len(goals) == 0 {
			fmt.Println(mutedStyle.Render("no goals"))
			return nil
		}
		for _, g := range goals {
			fmt.Println(renderGoal(g))
		}
		return nil
	},
}

func renderGoal(g models.Goal) string {
	filled := g.Progress * barWidth / models.ProgressMax
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	line := fmt.Sprintf("%s %3d%%  %s  %s", bar, g.Progress, g.Title, mutedStyle.Render("["+g.Category.Label()+"] "+g.ID.String()))
	if g.IsCompleted {
		return doneStyle.Render("✔ ") + line
	}
	return "  " + line
}

var addCmd = &cobra.Command{
	Use:   "add <title...>",
	Short: "Add a goal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			return services.ErrBlankTitle
		}
		category := models.Category(addCategory)
		if !category.Valid() {
			return services.ErrInvalidCategory
		}

		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		goal := models.NewGoal(title, addDesc, category, models.Now())
		if err := d.store.Add(goal); err != nil {
			return err
		}
		fmt.Println(goal.ID)
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <id> <percent>",
	Short: "Set a goal's progress (0-100, steps of 5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal id %q", args[0])
		}
		p, err := strconv.Atoi(args[1])
		if err != nil || !models.ValidProgress(p) {
			return services.ErrInvalidProgress
		}

		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		goal, err := d.goals.Get(id)
		if err != nil {
			return err
		}
		goal.SetProgress(p, models.Now())
		if err := d.store.Update(goal); err != nil {
			return err
		}
		fmt.Println(renderGoal(goal))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal id %q", args[0])
		}
		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		if _, err := d.goals.Get(id); err != nil {
			return err
		}
		return d.store.Delete(id)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all goals to a dated file",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := services.ParseExportFormat(exportFormat)
		if err != nil {
			return err
		}
		d, err := bootstrap(false)
		if err != nil {
			return err
		}
		filename, data, err := d.goals.Export(format)
		if err != nil {
			return err
		}
		if exportOut == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if exportOut != "" {
			filename = exportOut
		}
		if err := os.WriteFile(filename, data, 0o644); err != nil {
			return err
		}
		fmt.Println(filename)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", models.CategoryAll, "filter by category")
	listCmd.Flags().StringVarP(&listQuery, "search", "s", "", "filter by title or description")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", string(models.CategoryOther), "goal category")
	addCmd.Flags().StringVarP(&addDesc, "description", "d", "", "goal description")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json or yaml")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output path (- for stdout)")

	rootCmd.AddCommand(listCmd, addCmd, progressCmd, removeCmd, exportCmd)
}
