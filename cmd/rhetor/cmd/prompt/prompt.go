package prompt

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/cmdutil"
	"github.com/Lorak9904/RhetorAI/internal/app/feedback"
)

var inputFile string

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "read the transcript from a file")
}

// Cmd represents the prompt command
var Cmd = &cobra.Command{
	Use:   "prompt [transcript...]",
	Short: "Print the coaching prompt sent to the model for a transcript",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := cmdutil.ReadText(args, inputFile)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), feedback.BuildPrompt(text))
		return nil
	},
}
