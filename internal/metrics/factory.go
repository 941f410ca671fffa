package metrics

import (
	"virtual-file-system/internal/logging"
)

// NewCollector returns a NopCollector when metrics are disabled.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return NewNopCollector(), nil
	}
	return NewPrometheusCollector(config, logger)
}
