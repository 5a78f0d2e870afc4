package services

import (
	"context"
	"time"
)

// Simulate blocks for d, standing in for an external provider call.
// It returns the context error if ctx ends first.
func Simulate(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
