package metrics

import (
	"context"
	"time"
)

type NopCollector struct{}

func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

func (c *NopCollector) RecordOperation(operation string, duration time.Duration, err error) {}

func (c *NopCollector) RecordSpace(freeBlocks, totalBlocks, entries int) {}

func (c *NopCollector) Push(ctx context.Context) error {
	return nil
}
