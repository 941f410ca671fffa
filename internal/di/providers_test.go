package di

import (
	"context"
	"testing"

	"virtual-file-system/internal/config"
	"virtual-file-system/internal/logging"
	"virtual-file-system/internal/metrics"
	"virtual-file-system/internal/output"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Disk.DirectoryZoneSize = 4 * 500
	cfg.Disk.DataZoneSize = 64 * 1024
	cfg.Disk.MetadataZoneSize = 4096
	return cfg
}

func TestProvideLogger(t *testing.T) {
	assert.NotNil(t, ProvideLogger(nil))
	assert.NotNil(t, ProvideLogger(testConfig()))
}

func TestProvideMetricsCollector(t *testing.T) {
	logger := logging.NewNopLogger()

	assert.IsType(t, &metrics.NopCollector{}, ProvideMetricsCollector(nil, logger))
	assert.IsType(t, &metrics.NopCollector{}, ProvideMetricsCollector(testConfig(), logger))

	enabled := testConfig()
	enabled.Metrics.Enabled = true
	enabled.Metrics.PushgatewayURL = "http://localhost:9091"
	assert.IsType(t, &metrics.PrometheusCollector{}, ProvideMetricsCollector(enabled, logger))

	broken := testConfig()
	broken.Metrics.Enabled = true
	broken.Metrics.PushgatewayURL = ""
	assert.IsType(t, &metrics.NopCollector{}, ProvideMetricsCollector(broken, logger))
}

func TestProvideTracerProvider(t *testing.T) {
	logger := logging.NewNopLogger()

	shutdown := ProvideTracerProvider(testConfig(), logger)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	broken := testConfig()
	broken.Tracing.Enabled = true
	broken.Tracing.Endpoint = ""
	shutdown = ProvideTracerProvider(broken, logger)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	assert.NoError(t, ProvideTracerProvider(nil, logger)(context.Background()))
}

func TestProvideFileSystem(t *testing.T) {
	cfg := testConfig()

	fs, err := ProvideFileSystem(cfg, logging.NewNopLogger(), metrics.NewNopCollector())
	require.NoError(t, err)
	stats := fs.Stat()
	assert.Equal(t, 64, stats.BlockCount)
	assert.Equal(t, 4, stats.MaxEntries)

	format := ProvideFormatter(cfg, logging.NewNopLogger(), metrics.NewNopCollector())
	other, err := format()
	require.NoError(t, err)
	assert.NotSame(t, fs, other)

	cfg.Disk.BlockSize = 0
	_, err = ProvideFileSystem(cfg, logging.NewNopLogger(), metrics.NewNopCollector())
	assert.ErrorIs(t, err, config.ErrInvalidDiskConfig)
}

func TestProvideOutputWriter(t *testing.T) {
	cfg := testConfig()
	assert.IsType(t, &output.TextWriter{}, ProvideOutputWriter(cfg))

	cfg.OutputFormat = "json"
	assert.IsType(t, &output.JSONWriter{}, ProvideOutputWriter(cfg))
}

func TestInitializeApp(t *testing.T) {
	cfg := testConfig()

	app, err := InitializeApp(cfg)
	require.NoError(t, err)

	assert.Same(t, cfg, app.Config)
	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.MetricsCollector)
	assert.NotNil(t, app.TracerShutdown)
	assert.NotNil(t, app.OutputWriter)
	require.NotNil(t, app.Menu)
	assert.NoError(t, app.Menu.FileSystem().Check())
}

func TestInitializeAppRejectsBadLayout(t *testing.T) {
	cfg := testConfig()
	cfg.Disk.DataZoneSize = 1000

	_, err := InitializeApp(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidDiskConfig)
}
