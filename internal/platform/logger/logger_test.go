package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/custom-cars-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLevel(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	restoreDefault(t)
	buf := &TestLogBuffer{}

	l, closer, err := setup(config.ServerConfig{LogLevel: "warn"}, buf)
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()

	l.Info("hidden")
	l.Warn("shown", slog.String("car", "White Fox"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "White Fox", entries[0]["car"])
	assert.Same(t, l, slog.Default(), "Setup should install the logger as default")
}

func TestSetup_InvalidLevelWarns(t *testing.T) {
	restoreDefault(t)
	buf := &TestLogBuffer{}

	l, _, err := setup(config.ServerConfig{LogLevel: "loud"}, buf)
	require.NoError(t, err)
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	AssertLogField(t, buf, "configured_level", "loud")
}

func TestSetup_WritesRotatingFile(t *testing.T) {
	restoreDefault(t)
	buf := &TestLogBuffer{}
	path := filepath.Join(t.TempDir(), "cars.log")

	l, closer, err := setup(config.ServerConfig{LogLevel: "info", LogFile: path}, buf)
	require.NoError(t, err)

	l.Info("server started", slog.Int("port", 3000))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"server started"`)
	AssertLogContains(t, buf, "server started")
}

func TestFromContextOrDefault(t *testing.T) {
	fallback, _ := GetTestLogger(t)
	custom, _ := GetTestLogger(t)

	//nolint:staticcheck // nil context is part of the contract
	assert.Same(t, fallback, FromContextOrDefault(nil, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, custom, FromContextOrDefault(WithLogger(context.Background(), custom), fallback))
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestNewLogCaptureContext(t *testing.T) {
	ctx, buf := NewLogCaptureContext(t)

	FromContext(ctx).Debug("captured", slog.String("trace_id", "abc"))

	AssertLogField(t, buf, "trace_id", "abc")
	AssertLogContains(t, buf, "captured")
}
