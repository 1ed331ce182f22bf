package audio

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Lorak9904/RhetorAI/internal/app/errors"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name          string
		ffprobeOutput string
		expected      time.Duration
		expectedError bool
	}{
		{name: "integer seconds", ffprobeOutput: "30\n", expected: 30 * time.Second},
		{name: "decimal seconds", ffprobeOutput: "45.5\n", expected: 45500 * time.Millisecond},
		{name: "surrounding whitespace", ffprobeOutput: "  2.25  ", expected: 2250 * time.Millisecond},
		{name: "not a number", ffprobeOutput: "N/A\n", expectedError: true},
		{name: "empty", ffprobeOutput: "", expectedError: true},
		{name: "negative", ffprobeOutput: "-1", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := parseDuration(tt.ffprobeOutput)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestConvertArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"-y", "-i", "in.webm", "-vn", "-ar", "44100", "-ac", "2", "-b:a", "192k", "out.mp3"},
		convertArgs("in.webm", "out.mp3"))
}

func TestNeedsConversion(t *testing.T) {
	assert.True(t, NeedsConversion("answer.webm"))
	assert.True(t, NeedsConversion("ANSWER.WEBM"))
	assert.False(t, NeedsConversion("answer.mp3"))
	assert.False(t, NeedsConversion("answer"))
}

type copyConverter struct {
	suffix string
	err    error
}

func (c copyConverter) ConvertToMP3(ctx context.Context, inputPath, outputPath string) error {
	if c.err != nil {
		return c.err
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, append(data, c.suffix...), 0o600)
}

func TestConvertBytesToMP3(t *testing.T) {
	out, name, err := ConvertBytesToMP3(context.Background(), copyConverter{suffix: "-mp3"}, "dir/answer.webm", []byte("webm"))
	require.NoError(t, err)
	assert.Equal(t, "answer.mp3", name)
	assert.Equal(t, []byte("webm-mp3"), out)

	_, _, err = ConvertBytesToMP3(context.Background(), copyConverter{err: apperrors.ErrConversionFailed}, "answer.webm", []byte("webm"))
	assert.True(t, errors.Is(err, apperrors.ErrConversionFailed))
}

func TestFFmpegConverter_MissingBinary(t *testing.T) {
	conv := NewFFmpegConverter("/nonexistent/ffmpeg", "/nonexistent/ffprobe", nil)

	err := conv.ConvertToMP3(context.Background(), "in.webm", "out.mp3")
	assert.True(t, errors.Is(err, apperrors.ErrConversionFailed))

	_, err = conv.GetAudioDuration(context.Background(), "in.webm")
	assert.Error(t, err)
}
