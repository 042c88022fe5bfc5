package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/store"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Work with the final assessment question bank",
}

var questionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the question bank to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("out")
		data, err := course.Default().Bank.Workbook()
		if err != nil {
			return err
		}
		if err := store.EnsureDir(path); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", course.Default().Bank.Len(), path)
		return nil
	},
}

func init() {
	questionsExportCmd.Flags().String("out", "phishcourse-questions.xlsx", "Output workbook path")
	questionsCmd.AddCommand(questionsExportCmd)
}
