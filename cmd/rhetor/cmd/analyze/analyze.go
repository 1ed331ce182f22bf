package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/cmd/rhetor/cmd/cmdutil"
	"github.com/Lorak9904/RhetorAI/internal/api/v1/dto"
	"github.com/Lorak9904/RhetorAI/internal/app"
	"github.com/Lorak9904/RhetorAI/internal/app/batch"
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
	"github.com/Lorak9904/RhetorAI/internal/app/util/files"
)

var (
	inputDir     string
	limit        int
	parallel     int
	exportPath   string
	jsonOutput   bool
	showProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&inputDir, "dir", "d", "", "analyze every supported file in a directory, oldest first")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of files taken from --dir (0 means all)")
	Cmd.Flags().IntVarP(&parallel, "parallel", "j", 0, "concurrent analyses (default from config)")
	Cmd.Flags().StringVarP(&exportPath, "export", "o", "", "also write the results to an .xlsx workbook")
	Cmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	Cmd.Flags().BoolVar(&showProgress, "progress", false, "force the progress bar even when stderr is not a terminal")
}

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Score a transcript or recording and print coaching feedback",
	Long: `Score a transcript or recording and print coaching feedback.

.txt files are treated as transcripts; audio files (` + strings.Join(batch.SupportedExtensions(), ", ") + `)
are transcribed first. With --dir every supported file in the directory is analyzed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (len(args) == 0) == (inputDir == "") {
			return errors.New("pass exactly one of a file argument or --dir")
		}

		cfg, logger, err := cmdutil.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		svc, err := app.InitializeService(cfg, logger, metrics.New(app.MetricsNamespace))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if parallel <= 0 {
			parallel = cfg.Batch.Parallel
		}

		var progress *batch.ProgressManager
		if inputDir != "" {
			progress = batch.NewProgressManager(batch.ProgressConfig{Enabled: batch.ShouldShowProgress(showProgress)})
		}
		runner := batch.NewRunner(svc, parallel, progress, logger)

		var items []batch.Item
		if inputDir != "" {
			dir, err := files.GetAbsolutePath(inputDir)
			if err != nil {
				return err
			}
			items, err = runner.RunDir(ctx, dir, limit)
			if err != nil {
				return err
			}
		} else {
			path, err := files.GetAbsolutePath(args[0])
			if err != nil {
				return err
			}
			items = runner.Run(ctx, []string{path})
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			err = printJSON(out, items)
		} else {
			printItems(out, items)
		}
		if err != nil {
			return err
		}

		if exportPath != "" {
			if err := batch.ToExcel(items, exportPath); err != nil {
				return err
			}
			logger.Info("Results exported", zap.String("path", exportPath))
			fmt.Fprintf(out, "export finished, exported file path: %v\n", exportPath)
		}

		summary := batch.Summarize(items)
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d analyses failed", summary.Failed, summary.Total)
		}
		return nil
	},
}

type jsonItem struct {
	File   string                `json:"file"`
	Result *dto.FeedbackResponse `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

func printJSON(w io.Writer, items []batch.Item) error {
	out := make([]jsonItem, 0, len(items))
	for _, it := range items {
		entry := jsonItem{File: it.Name}
		if it.Err != nil {
			entry.Error = it.Err.Error()
		} else {
			resp := dto.NewFeedbackResponse(it.Result)
			entry.Result = &resp
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printItems(w io.Writer, items []batch.Item) {
	for i, it := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s ==\n", it.Name)
		if it.Err != nil {
			fmt.Fprintf(w, "error: %v\n", it.Err)
			continue
		}

		fb := it.Result.Feedback
		fmt.Fprintf(w, "Score: %g/100\n", fb.Score)
		fmt.Fprintf(w, "%s\n", fb.Analysis)
		for n, tip := range fb.Tips {
			fmt.Fprintf(w, "  %d. %s\n", n+1, tip)
		}
		if d := it.Result.Disfluency; d != nil {
			fmt.Fprintf(w, "Words: %d  Fillers: %d", d.WordCount, d.FillerCount)
			if d.SpeechRate > 0 {
				fmt.Fprintf(w, "  Pace: %.0f wpm", d.WordsPerMinute())
			}
			fmt.Fprintln(w)
		}
	}

	if len(items) > 1 {
		s := batch.Summarize(items)
		fmt.Fprintf(w, "\n%d analyzed, %d failed, average score %.1f\n", s.Succeeded, s.Failed, s.AverageScore)
	}
}
