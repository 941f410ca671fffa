package metrics

import (
	"context"
	"fmt"
	"os"
	"time"

	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "vfs"

type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry
	instance string

	operationDuration *prometheus.HistogramVec
	operations        *prometheus.CounterVec
	freeBlocks        prometheus.Gauge
	usage             prometheus.Gauge
	entries           prometheus.Gauge
}

// NewPrometheusCollector registers:
//   - vfs_operation_duration_seconds (histogram; operation, status)
//   - vfs_operations_total (counter; operation, status)
//   - vfs_free_blocks, vfs_usage_ratio, vfs_entries (gauges)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("cannot resolve hostname for metrics instance label", "error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	c := &PrometheusCollector{
		config:   config,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		instance: instance,
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of file system operations in seconds",
				Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
			},
			[]string{"operation", "status"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of file system operations by result code",
			},
			[]string{"operation", "status"},
		),
		freeBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "free_blocks",
			Help:      "Number of free data blocks",
		}),
		usage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "usage_ratio",
			Help:      "Fraction of data blocks in use",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Number of directory entries",
		}),
	}

	for _, m := range []prometheus.Collector{c.operationDuration, c.operations, c.freeBlocks, c.usage, c.entries} {
		if err := c.registry.Register(m); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}

	return c, nil
}

// RecordOperation labels failures with the error code, e.g. FS.INSUFFICIENT_SPACE.
func (c *PrometheusCollector) RecordOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = errs.Code(err)
	}

	c.operationDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
	c.operations.WithLabelValues(operation, status).Inc()
}

func (c *PrometheusCollector) RecordSpace(freeBlocks, totalBlocks, entries int) {
	c.freeBlocks.Set(float64(freeBlocks))
	if totalBlocks > 0 {
		c.usage.Set(float64(totalBlocks-freeBlocks) / float64(totalBlocks))
	}
	c.entries.Set(float64(entries))
}

func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push cancelled")
		return nil
	default:
	}

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("metrics push failed", "error", err.Error(), "job", c.config.JobName)
		return nil
	}

	c.logger.Debug("metrics pushed", "job", c.config.JobName, "instance", c.instance)
	return nil
}

// Registry is exposed for tests.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
