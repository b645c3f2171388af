package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "json")

	logger.Debug("loaded", "records", 7)
	assert.Contains(t, buf.String(), `"msg":"loaded"`)
	assert.Contains(t, buf.String(), `"records":7`)
}

func TestNewLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "text")

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestNewMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ReportsGenerated.WithLabelValues("week").Inc()
	m.ReportErrors.WithLabelValues("week", "load").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsGenerated.WithLabelValues("week")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReportErrors.WithLabelValues("week", "load")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Panics(t, func() { NewMetrics(reg) }, "registering twice must fail")
}
