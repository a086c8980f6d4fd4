package common

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RunIDFromContext(ctx))
	_, ok := ContentHashFromContext(ctx)
	assert.False(t, ok)

	ctx = WithContentHash(WithRunID(ctx, "run-1"), "abcd")
	assert.Equal(t, "run-1", RunIDFromContext(ctx))
	h, ok := ContentHashFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abcd", h)
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithRunID(context.Background(), "run-7")
	LoggerFromContext(ctx, base).Info("hello")
	assert.Contains(t, buf.String(), "run_id=run-7")

	buf.Reset()
	var other bytes.Buffer
	ctx = WithLogger(context.Background(), slog.New(slog.NewTextHandler(&other, nil)))
	LoggerFromContext(ctx, base).Info("stored")
	assert.Empty(t, buf.String())
	assert.Contains(t, other.String(), "stored")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLoggerFormat(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	NewLoggerTo(&buf, LogConfig{Level: "warn", Format: "json"}).Info("dropped")
	assert.Empty(t, buf.String())

	NewLoggerTo(&buf, LogConfig{Level: "info", Format: "json"}).Info("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)

	buf.Reset()
	NewLoggerTo(&buf, LogConfig{Format: "text"}).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
