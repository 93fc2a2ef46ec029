package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuffered(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{Level: level, Component: ComponentHTTP, Format: "json", Output: &buf}), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestLogger_ComponentAttached(t *testing.T) {
	l, buf := newBuffered(slog.LevelInfo)
	l.Info("request handled", FieldStatusCode, 200)

	rec := decodeLine(t, buf)
	assert.Equal(t, "request handled", rec["msg"])
	assert.Equal(t, ComponentHTTP, rec[FieldComponent])
	assert.Equal(t, float64(200), rec[FieldStatusCode])
}

func TestLogger_WithComponent(t *testing.T) {
	l, buf := newBuffered(slog.LevelInfo)
	l.With(FieldRequestID, "abc").WithComponent(ComponentWorker).Warn("slow")

	rec := decodeLine(t, buf)
	assert.Equal(t, ComponentWorker, rec[FieldComponent])
	assert.Equal(t, "abc", rec[FieldRequestID])
	assert.Equal(t, "WARN", rec["level"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBuffered(slog.LevelWarn)
	l.Debug("hidden")
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.ErrorContext(context.Background(), "shown")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestPrintf(t *testing.T) {
	l, buf := newBuffered(slog.LevelDebug)
	Printf{L: l}.Debugf("parsed %d expenses", 3)

	rec := decodeLine(t, buf)
	assert.Equal(t, "parsed 3 expenses", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestFields(t *testing.T) {
	f := NewFields().WithRequestID("r1").WithOperation(OpCompare).WithError(errors.New("boom")).WithError(nil)
	assert.Equal(t, "r1", f[FieldRequestID])
	assert.Equal(t, OpCompare, f[FieldOperation])
	assert.Equal(t, "boom", f[FieldError])
	assert.Len(t, f.ToSlice(), 6)
}

func TestFromContext(t *testing.T) {
	l, _ := newBuffered(slog.LevelInfo)
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.Equal(t, "unknown", fallback.Component())
}
