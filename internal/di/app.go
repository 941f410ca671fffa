// Package di wires the application together with Wire.
package di

import (
	"virtual-file-system/internal/config"
	"virtual-file-system/internal/logging"
	"virtual-file-system/internal/menu"
	"virtual-file-system/internal/metrics"
	"virtual-file-system/internal/output"
	"virtual-file-system/internal/tracing"
)

// App holds everything cmd/main needs to run the shell and shut down cleanly.
type App struct {
	Config *config.Config
	Logger logging.Logger

	// MetricsCollector is a NopCollector unless metrics are enabled.
	MetricsCollector metrics.Collector

	// TracerShutdown flushes buffered spans. It is a no-op unless tracing is
	// enabled.
	TracerShutdown tracing.Shutdown

	OutputWriter output.Writer

	// Menu owns the file system. Read it through Menu.FileSystem since format
	// replaces it.
	Menu *menu.Menu
}
