package di

import (
	"virtual-file-system/internal/config"
	"virtual-file-system/internal/filesystem"
	"virtual-file-system/internal/logging"
	"virtual-file-system/internal/menu"
	"virtual-file-system/internal/metrics"
	"virtual-file-system/internal/output"
	"virtual-file-system/internal/tracing"
)

// ProvideLogger falls back to the default logging config when cfg is nil.
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogger(logging.DefaultConfig())
	}
	return logging.NewLogger(cfg.Logging)
}

// ProvideMetricsCollector never fails: a collector that cannot be built is
// replaced by a NopCollector and the error is logged.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.Metrics, logger)
	if err != nil {
		logger.Error("metrics collector unavailable, using nop collector", "error", err)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider installs the global tracer provider and returns its
// shutdown. Failures fall back to NopShutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) tracing.Shutdown {
	if cfg == nil {
		return tracing.NopShutdown
	}

	shutdown, err := tracing.NewTracerProvider(cfg.Tracing, logger)
	if err != nil {
		logger.Error("tracing unavailable, using nop provider", "error", err)
		return tracing.NopShutdown
	}
	return shutdown
}

func ProvideFileSystem(cfg *config.Config, logger logging.Logger, collector metrics.Collector) (*filesystem.FileSystem, error) {
	return filesystem.FormatFilesystem(cfg.Disk, filesystem.WithLogger(logger), filesystem.WithMetrics(collector))
}

// ProvideFormatter builds the file systems handed out by the format command
// with the same layout, logger and metrics as the first one.
func ProvideFormatter(cfg *config.Config, logger logging.Logger, collector metrics.Collector) menu.FormatFunc {
	return func() (*filesystem.FileSystem, error) {
		return ProvideFileSystem(cfg, logger, collector)
	}
}

func ProvideOutputWriter(cfg *config.Config) output.Writer {
	return output.NewWriter(cfg.OutputFormat)
}

func ProvideContentProvider(cfg *config.Config) menu.ContentProvider {
	return menu.NewEditorContent(cfg.Editor)
}

func ProvideMenu(
	cfg *config.Config,
	fileSystem *filesystem.FileSystem,
	writer output.Writer,
	format menu.FormatFunc,
	content menu.ContentProvider,
	logger logging.Logger,
) *menu.Menu {
	return menu.NewMenu(fileSystem, writer,
		menu.WithConfig(cfg),
		menu.WithFormatter(format),
		menu.WithContentProvider(content),
		menu.WithLogger(logger),
	)
}
