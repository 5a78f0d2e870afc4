// Package estimate is the form shell around the pricing engine: it fills
// defaults, clamps counts, consults the estimate cache and captions the result.
package estimate

import (
	"context"
	"errors"

	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/repositories/cache"
	"github.com/greysolve/outreach-console/services"
	"go.uber.org/zap"
)

// Result is an estimate together with everything the form shows next to it
type Result struct {
	Config    pricing.CampaignConfig `json:"config"`
	Estimate  pricing.CostEstimate   `json:"estimate"`
	Display   pricing.Display        `json:"display"`
	LineItems []pricing.LineItem     `json:"line_items"`
}

// Service computes campaign cost estimates
type Service struct {
	book        pricing.PriceBook
	fingerprint string
	cache       cache.EstimateCache
	logger      *zap.Logger
}

// NewService creates an estimate service. estimates may be nil.
func NewService(book pricing.PriceBook, estimates cache.EstimateCache, logger *zap.Logger) *Service {
	return &Service{
		book:        book,
		fingerprint: book.Fingerprint(),
		cache:       estimates,
		logger:      logger,
	}
}

// PriceBook returns the prices the service estimates with
func (s *Service) PriceBook() pricing.PriceBook {
	return s.book
}

// Defaults returns the estimate of the form's starting configuration
func (s *Service) Defaults(ctx context.Context) (*Result, error) {
	return s.Estimate(ctx, pricing.DefaultConfig())
}

// Estimate clamps cfg the way the form does and prices it.
// Unknown providers are rejected rather than priced.
func (s *Service) Estimate(ctx context.Context, cfg pricing.CampaignConfig) (*Result, error) {
	cfg = pricing.Clamp(cfg)
	if err := pricing.Validate(cfg); err != nil {
		return nil, configError(err)
	}

	est := s.lookup(ctx, cfg)
	return &Result{
		Config:    cfg,
		Estimate:  est,
		Display:   est.Display(),
		LineItems: s.book.LineItems(cfg, est),
	}, nil
}

// Compute prices an already validated configuration without clamping
func (s *Service) Compute(ctx context.Context, cfg pricing.CampaignConfig) pricing.CostEstimate {
	return s.lookup(ctx, cfg)
}

func (s *Service) lookup(ctx context.Context, cfg pricing.CampaignConfig) pricing.CostEstimate {
	if s.cache == nil {
		return s.book.Estimate(cfg)
	}

	key := cache.Key(s.fingerprint, cfg)
	est, err := s.cache.Get(ctx, key)
	if err == nil {
		s.logger.Debug("estimate cache hit", zap.String("key", key))
		return est
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("estimate cache read failed", zap.String("key", key), zap.Error(err))
	}

	est = s.book.Estimate(cfg)
	if err := s.cache.Set(ctx, key, est); err != nil {
		s.logger.Warn("estimate cache write failed", zap.String("key", key), zap.Error(err))
	}
	return est
}

func configError(err error) error {
	domainErr := services.NewDomainError(services.ErrorTypeValidation, "invalid campaign configuration", err)
	var cfgErr *pricing.ConfigError
	if errors.As(err, &cfgErr) {
		domainErr.WithDetail(cfgErr.Field, cfgErr.Reason)
	}
	return domainErr
}
