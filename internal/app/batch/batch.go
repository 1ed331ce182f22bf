// Package batch scores every recording or transcript in a directory.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
	"github.com/Lorak9904/RhetorAI/internal/app/common"
	apperrors "github.com/Lorak9904/RhetorAI/internal/app/errors"
	"github.com/Lorak9904/RhetorAI/internal/app/pipeline"
	"github.com/Lorak9904/RhetorAI/internal/app/util/files"
)

// TranscriptExtension marks plain-text answers that skip transcription
const TranscriptExtension = ".txt"

// Analyzer is the part of the pipeline a batch run needs
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (*pipeline.Result, error)
	AnalyzeAudio(ctx context.Context, filename string, audio []byte) (*pipeline.Result, error)
}

// Item is the outcome for one input file
type Item struct {
	Path    string
	Name    string
	Result  *pipeline.Result
	Err     error
	Elapsed time.Duration
}

// Summary aggregates a batch run
type Summary struct {
	Total        int
	Succeeded    int
	Failed       int
	AverageScore float64
	Best         *Item
	Worst        *Item
}

// Runner analyzes files with bounded concurrency
type Runner struct {
	analyzer Analyzer
	parallel int
	progress *ProgressManager
	logger   *zap.Logger
}

// NewRunner creates a Runner. parallel below 1 means 1.
func NewRunner(analyzer Analyzer, parallel int, progress *ProgressManager, logger *zap.Logger) *Runner {
	if parallel < 1 {
		parallel = 1
	}
	return &Runner{
		analyzer: analyzer,
		parallel: parallel,
		progress: progress,
		logger:   common.OrNop(logger).Named("batch"),
	}
}

// SupportedExtensions lists the file extensions RunDir picks up
func SupportedExtensions() []string {
	return append(lo.Map(provider.SupportedAudioFormats(), func(f provider.AudioFormat, _ int) string {
		return "." + string(f)
	}), TranscriptExtension)
}

// RunDir analyzes up to limit supported files in dir, oldest first. A limit
// below 1 means all of them.
func (r *Runner) RunDir(ctx context.Context, dir string, limit int) ([]Item, error) {
	absDir, err := files.GetAbsolutePath(dir)
	if err != nil {
		return nil, err
	}

	fileInfos, err := files.ListFiles(absDir, SupportedExtensions()...)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(fileInfos) > limit {
		fileInfos = fileInfos[:limit]
	}

	r.logger.Info("Found files to analyze", zap.String("dir", absDir), zap.Int("count", len(fileInfos)))
	return r.Run(ctx, lo.Map(fileInfos, func(f files.FileInfo, _ int) string { return f.FullPath })), nil
}

// Run analyzes paths concurrently. Items come back in input order; per-file
// failures are reported on the Item rather than aborting the run.
func (r *Runner) Run(ctx context.Context, paths []string) []Item {
	items := make([]Item, len(paths))
	if len(paths) == 0 {
		return items
	}

	bar := r.progress.CreateBar(len(paths), "Analyzing")
	defer r.progress.Wait()

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.parallel)

	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				items[i] = Item{Path: path, Name: filepath.Base(path), Err: ctx.Err()}
				bar.Increment(0)
				return
			}
			defer func() { <-sem }()

			start := time.Now()
			items[i] = r.analyzeFile(ctx, path)
			items[i].Elapsed = time.Since(start)
			bar.Increment(items[i].Elapsed)

			if items[i].Err != nil {
				r.logger.Warn("Analysis failed", zap.String("file", items[i].Name), zap.Error(items[i].Err))
			} else {
				r.logger.Info("Analysis completed",
					zap.String("file", items[i].Name),
					zap.Float64("score", items[i].Result.Feedback.Score),
				)
			}
		}(i, path)
	}
	wg.Wait()
	bar.Complete()

	return items
}

func (r *Runner) analyzeFile(ctx context.Context, path string) Item {
	item := Item{Path: path, Name: filepath.Base(path)}

	if strings.EqualFold(filepath.Ext(path), TranscriptExtension) {
		text, err := files.ReadTextFile(path)
		if err != nil {
			item.Err = err
			return item
		}
		item.Result, item.Err = r.analyzer.Analyze(ctx, text)
		if item.Result != nil {
			item.Result.Filename = item.Name
		}
		return item
	}

	data, err := readFile(path)
	if err != nil {
		item.Err = err
		return item
	}
	item.Result, item.Err = r.analyzer.AnalyzeAudio(ctx, item.Name, data)
	return item
}

// Summarize computes totals and the best and worst scoring items
func Summarize(items []Item) Summary {
	ok := lo.Filter(items, func(it Item, _ int) bool { return it.Err == nil && it.Result != nil && it.Result.Feedback != nil })

	s := Summary{
		Total:     len(items),
		Succeeded: len(ok),
		Failed:    len(items) - len(ok),
	}
	if len(ok) == 0 {
		return s
	}

	score := func(it Item) float64 { return it.Result.Feedback.Score }
	s.AverageScore = lo.SumBy(ok, score) / float64(len(ok))

	best := lo.MaxBy(ok, func(a, b Item) bool { return score(a) > score(b) })
	worst := lo.MinBy(ok, func(a, b Item) bool { return score(a) < score(b) })
	s.Best, s.Worst = &best, &worst
	return s
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrFileReadFailed, "%s: %v", filepath.Base(path), err)
	}
	return data, nil
}
