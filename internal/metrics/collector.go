// Package metrics records file system operations and space usage with
// Prometheus and optionally pushes them to a Pushgateway.
package metrics

import (
	"context"
	"time"
)

// Collector is implemented by PrometheusCollector and NopCollector.
type Collector interface {
	// RecordOperation records one finished operation ("create", "read", ...).
	RecordOperation(operation string, duration time.Duration, err error)

	// RecordSpace publishes the current block and entry accounting.
	RecordSpace(freeBlocks, totalBlocks, entries int)

	// Push sends the collected metrics. Failures are logged, never returned.
	Push(ctx context.Context) error
}
