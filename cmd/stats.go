package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show course progress and engagement statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		svc := d.service(cmd)
		snap := svc.Snapshot()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Learner:        %s\n", snap.UserName)
		fmt.Fprintf(out, "Progress:       %d%%\n", svc.Progress())
		fmt.Fprintf(out, "Current:        %s\n", svc.Course().SectionTitle(snap.CurrentSection))
		fmt.Fprintf(out, "Final score:    %d%%\n\n", snap.FinalScore)

		modules := table.New().Border(lipgloss.NormalBorder()).Headers("Module", "Completed", "Quiz")
		for _, m := range svc.Course().Modules {
			done := "no"
			if snap.IsCompleted(m.ID()) {
				done = "yes"
			}
			quiz := "-"
			if v, ok := snap.ModuleScores[m.ID()]; ok {
				quiz = strconv.Itoa(v) + "/1"
			}
			modules.Row(fmt.Sprintf("%d. %s", m.Number, m.Title), done, quiz)
		}
		fmt.Fprintln(out, modules.String())

		repo := d.store.EventRepo()
		counts, err := repo.CountByAction(ctx)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		if len(counts) == 0 {
			fmt.Fprintln(out, "\nNo engagement recorded yet.")
			return nil
		}
		actions := slices.Sorted(maps.Keys(counts))
		byAction := table.New().Border(lipgloss.NormalBorder()).Headers("Action", "Count")
		for _, a := range actions {
			byAction.Row(a, strconv.Itoa(counts[a]))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, byAction.String())

		limit, _ := cmd.Flags().GetInt("recent")
		if limit <= 0 {
			return nil
		}
		recent, err := repo.RecentEngagement(ctx, limit)
		if err != nil {
			return fmt.Errorf("recent events: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, recentTable(svc.Course(), recent).String())
		return nil
	},
}

func recentTable(c *course.Course, events []store.EngagementEvent) *table.Table {
	t := table.New().Border(lipgloss.NormalBorder()).Headers("Time", "Action", "Section")
	for _, ev := range events {
		section, _ := ev.Details["section"].(string)
		if section != "" {
			section = c.SectionTitle(section)
		}
		t.Row(ev.CreatedAt.Local().Format("2006-01-02 15:04:05"), ev.Action, section)
	}
	return t
}

func init() {
	statsCmd.Flags().Int("recent", 10, "Number of recent events to list (0 to hide)")
}
