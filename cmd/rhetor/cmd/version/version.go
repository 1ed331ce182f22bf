package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lorak9904/RhetorAI/internal/app"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rhetor",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), app.Version)
		return nil
	},
}
