package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))

	cause := fmt.Errorf("disk full")
	err := Wrapf(cause, "writing %s", "out.mp3")
	assert.Equal(t, "writing out.mp3: disk full", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}

func TestIs(t *testing.T) {
	err := Unsupported("notes.txt")
	assert.True(t, stderrors.Is(err, ErrUnsupportedFormat))
	assert.False(t, stderrors.Is(err, ErrEmptyAudio))
	assert.Equal(t, "cannot process notes.txt: unsupported audio format", err.Error())

	wrapped := fmt.Errorf("handler: %w", Wrap(ErrInvalidConfig, "server.port"))
	assert.True(t, stderrors.Is(wrapped, ErrInvalidConfig))
	assert.False(t, stderrors.Is(wrapped, ErrMissingConfig))
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      bool
		wantField string
	}{
		{name: "nil", err: nil, want: false},
		{name: "required", err: RequiredField("text"), want: true, wantField: "text"},
		{name: "invalid", err: InvalidField("port", "not a number"), want: true, wantField: "port"},
		{name: "range", err: OutOfRange("max_attempts", 1, 10), want: true, wantField: "max_attempts"},
		{name: "wrapped by fmt", err: fmt.Errorf("synthesize: %w", RequiredField("text")), want: true, wantField: "text"},
		{name: "empty transcript", err: Wrap(ErrEmptyTranscript, "analyze"), want: true},
		{name: "empty audio", err: ErrEmptyAudio, want: true},
		{name: "config error", err: Wrap(ErrInvalidConfig, "server port invalid"), want: false},
		{name: "plain error", err: stderrors.New("required by law"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidationError(tt.err))

			var appErr *Error
			if tt.wantField != "" && assert.True(t, stderrors.As(tt.err, &appErr)) {
				assert.Equal(t, tt.wantField, appErr.Field())
			}
		})
	}
}
