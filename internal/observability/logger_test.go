package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/fars-dashboard/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefault puts back the slog default that NewLogger replaces.
func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestNewLogger_Levels(t *testing.T) {
	restoreDefault(t)
	tests := []struct {
		level     string
		debugOn   bool
		infoOn    bool
		warningOn bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"warning", false, false, true},
		{"WARNING", false, false, true},
		{"error", false, false, false},
		{"", false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(&config.Config{LogLevel: tt.level, LogFormat: "json"})
			ctx := context.Background()
			assert.Equal(t, tt.debugOn, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.infoOn, logger.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.warningOn, logger.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	restoreDefault(t)
	jsonLogger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json"})
	_, ok := jsonLogger.Handler().(*slog.JSONHandler)
	assert.True(t, ok)

	textLogger := NewLogger(&config.Config{LogLevel: "debug", LogFormat: "TEXT"})
	_, ok = textLogger.Handler().(*slog.TextHandler)
	assert.True(t, ok)
	assert.Same(t, textLogger, slog.Default())
}

func TestNewMetricsForTesting_Unregistered(t *testing.T) {
	m1 := NewMetricsForTesting()
	m2 := NewMetricsForTesting()
	require.NotNil(t, m1.DatasetLoads)

	m1.DatasetLoads.WithLabelValues("success").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m1.DatasetLoads.WithLabelValues("success")))
	assert.Zero(t, testutil.ToFloat64(m2.DatasetLoads.WithLabelValues("success")))
}
