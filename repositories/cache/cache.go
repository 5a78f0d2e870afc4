// Package cache stores computed cost estimates keyed by pricing configuration.
// A cache never changes a result: callers recompute on any miss or error.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/greysolve/outreach-console/internal/pricing"
)

// ErrMiss is returned by Get when no usable entry exists
var ErrMiss = errors.New("cache miss")

// EstimateCache stores estimates for a pricing configuration
type EstimateCache interface {
	Get(ctx context.Context, key string) (pricing.CostEstimate, error)
	Set(ctx context.Context, key string, estimate pricing.CostEstimate) error
}

// Key builds the cache key of cfg priced with the book identified by fingerprint
func Key(fingerprint string, cfg pricing.CampaignConfig) string {
	return fmt.Sprintf("estimate:%s:%d:%d:%s:%s",
		fingerprint, cfg.NumberOfDomains, cfg.InboxesPerDomain, cfg.WorkspaceProvider, cfg.SequencingPlatform)
}
