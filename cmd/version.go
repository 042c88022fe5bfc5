package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/phishcourse/internal/course"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		c := course.Default()
		fmt.Fprintf(cmd.OutOrStdout(), "phishcourse %s (course %s)\n", version, c.Version)
	},
}
