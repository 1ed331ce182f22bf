package speak

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/cmdutil"
	"github.com/Lorak9904/RhetorAI/internal/app"
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
)

var (
	inputFile  string
	outputFile string
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "read the text from a file")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "speech.mp3", "where to write the MP3")
}

// Cmd represents the speak command
var Cmd = &cobra.Command{
	Use:   "speak [text...]",
	Short: "Synthesize text to an MP3 with the configured speech provider",
	Long: `Synthesize text to an MP3 with the configured speech provider.

The speech section of the config is enabled for this command even when the
server keeps it off, so only its API key needs to be set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := cmdutil.ReadText(args, inputFile)
		if err != nil {
			return err
		}

		cfg, logger, err := cmdutil.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg.Speech.Enabled = true
		cfg.Transcriber.Enabled = false

		svc, err := app.InitializeService(cfg, logger, metrics.New(app.MetricsNamespace))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		audio, err := svc.Synthesize(ctx, text)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputFile, audio, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}

		logger.Info("Speech written", zap.String("path", outputFile), zap.Int("bytes", len(audio)))
		fmt.Fprintf(cmd.OutOrStdout(), "speech written to %s\n", outputFile)
		return nil
	},
}
