package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultProviderAndLevel(t *testing.T) {
	l := New(Config{})

	require.NotNil(t, l)
	h := l.Handler()
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestNew_DevProviderDebugLevel(t *testing.T) {
	l := New(Config{Provider: ProviderDevSlog, Level: DEBUG})

	require.NotNil(t, l)
	assert.True(t, l.Handler().Enabled(context.Background(), slog.LevelDebug))
}

func TestNew_NoopProvider(t *testing.T) {
	l := New(Config{Provider: ProviderNoop, Level: DEBUG})

	require.NotNil(t, l)
	// Noop must stay silent no matter the level.
	l.Error("should go nowhere")
}

func TestContextRoundTrip(t *testing.T) {
	l := NewNoop()
	ctx := NewContext(context.Background(), l)

	assert.Same(t, l, FromContext(ctx))
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	got := FromContext(context.Background())

	assert.Same(t, slog.Default(), got)
}

func TestWithErr_AttachesStackTrace(t *testing.T) {
	err := errors.New("boom")

	l := WithErr(err)

	require.NotNil(t, l)
	l.Debug("carries error and stack attrs")
}
