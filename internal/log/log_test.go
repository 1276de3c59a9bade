package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	logger := New(io.Discard, false)
	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContextOrDiscard(ctx))
}

func TestFromContextFallback(t *testing.T) {
	assert.NotNil(t, FromContextOrDiscard(context.Background()))
}

func TestDebugLevel(t *testing.T) {
	ctx := context.Background()
	assert.True(t, New(io.Discard, true).Enabled(ctx, slog.LevelDebug))
	assert.False(t, New(io.Discard, false).Enabled(ctx, slog.LevelDebug))
}

func TestLambdaStripsTimestamps(t *testing.T) {
	var buf bytes.Buffer
	NewLambda(&buf).Info("started")
	assert.Contains(t, buf.String(), "started")
	assert.NotContains(t, buf.String(), `"time"`)
}
