package audio

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
	"github.com/Lorak9904/RhetorAI/internal/app/common"
	apperrors "github.com/Lorak9904/RhetorAI/internal/app/errors"
)

// Converter turns an input audio file into MP3.
type Converter interface {
	ConvertToMP3(ctx context.Context, inputPath, outputPath string) error
}

// FFmpegConverter shells out to ffmpeg and ffprobe.
type FFmpegConverter struct {
	FFmpegPath  string
	FFprobePath string
	logger      *zap.Logger
}

// NewFFmpegConverter creates a converter using the binaries on PATH unless
// explicit paths are given.
func NewFFmpegConverter(ffmpegPath, ffprobePath string, logger *zap.Logger) *FFmpegConverter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegConverter{
		FFmpegPath:  ffmpegPath,
		FFprobePath: ffprobePath,
		logger:      common.OrNop(logger).Named("audio"),
	}
}

func convertArgs(inputPath, outputPath string) []string {
	return []string{"-y", "-i", inputPath, "-vn", "-ar", "44100", "-ac", "2", "-b:a", "192k", outputPath}
}

// ConvertToMP3 re-encodes inputPath as 44.1kHz stereo 192k MP3.
func (c *FFmpegConverter) ConvertToMP3(ctx context.Context, inputPath, outputPath string) error {
	c.logger.Debug("Converting to mp3", zap.String("input", inputPath), zap.String("output", outputPath))

	cmd := exec.CommandContext(ctx, c.FFmpegPath, convertArgs(inputPath, outputPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return apperrors.Wrapf(apperrors.ErrConversionFailed, "ffmpeg: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	c.logger.Debug("Conversion completed", zap.String("output", outputPath))
	return nil
}

// GetAudioDuration asks ffprobe for the container duration of filePath.
func (c *FFmpegConverter) GetAudioDuration(ctx context.Context, filePath string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, c.FFprobePath, "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", filePath, err)
	}
	return parseDuration(string(output))
}

func parseDuration(output string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, err
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("invalid duration %q", strings.TrimSpace(output))
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// NeedsConversion reports whether filename must be re-encoded before upload.
func NeedsConversion(filename string) bool {
	return provider.GetAudioFormatFromFilename(filename) == provider.FormatWEBM
}

// ConvertBytesToMP3 runs conv over in-memory audio through a scratch directory
// and returns the MP3 bytes and their new filename.
func ConvertBytesToMP3(ctx context.Context, conv Converter, filename string, data []byte) ([]byte, string, error) {
	dir, err := os.MkdirTemp("", "rhetor-audio-*")
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrFileWriteFailed, err.Error())
	}
	defer os.RemoveAll(dir)

	base := filepath.Base(filename)
	inputPath := filepath.Join(dir, base)
	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrFileWriteFailed, err.Error())
	}

	mp3Name := strings.TrimSuffix(base, filepath.Ext(base)) + ".mp3"
	outputPath := filepath.Join(dir, "out-"+mp3Name)
	if err := conv.ConvertToMP3(ctx, inputPath, outputPath); err != nil {
		return nil, "", err
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrFileReadFailed, err.Error())
	}
	return out, mp3Name, nil
}
