package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/analyze"
	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/cmdutil"
	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/prompt"
	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/serve"
	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/speak"
	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rhetor",
	Short: "Speech coaching feedback from recorded or typed answers",
	Long: `Speech coaching feedback from recorded or typed answers.
- serve runs the HTTP API used by the web recorder
- analyze scores a single file or a whole directory from the terminal
- speak reads feedback aloud through the configured speech provider`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(analyze.Cmd)
	rootCmd.AddCommand(prompt.Cmd)
	rootCmd.AddCommand(speak.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringP(cmdutil.ConfigFlag, "c", "", "config file (default is ~/.rhetor/config.yaml or ./config/rhetor.yaml)")
	rootCmd.PersistentFlags().BoolP(cmdutil.VerboseFlag, "V", false, "verbose output")
}
