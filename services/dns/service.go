package dns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/greysolve/outreach-console/services"
	"go.uber.org/zap"
)

// Summary counts DNS domains by health
type Summary struct {
	Healthy     int `json:"healthy"`
	Configuring int `json:"configuring"`
	Error       int `json:"error"`
}

// List is every domain's DNS configuration with health counts
type List struct {
	Domains []*models.DomainDNS `json:"domains"`
	Summary Summary             `json:"summary"`
}

// Diagnosis lists the records of a domain that are not verified
type Diagnosis struct {
	DomainID string             `json:"domain_id"`
	Domain   string             `json:"domain"`
	Healthy  bool               `json:"healthy"`
	Issues   []models.DNSRecord `json:"issues"`
}

// Config holds the simulated provider delays
type Config struct {
	VerifyDelay   time.Duration
	DiagnoseDelay time.Duration
}

// Service manages DNS records of sending domains
type Service struct {
	repo     repositories.InventoryRepository
	activity services.ActivityRecorder
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a DNS service
func NewService(repo repositories.InventoryRepository, activity services.ActivityRecorder, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		activity: activity,
		cfg:      cfg,
		logger:   logger,
	}
}

// List returns every domain's DNS configuration
func (s *Service) List(ctx context.Context) (*List, error) {
	all, err := s.repo.ListDNS(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list dns configuration", err)
	}

	out := &List{Domains: all}
	for _, d := range all {
		switch d.DNSHealth {
		case models.DNSHealthHealthy:
			out.Summary.Healthy++
		case models.DNSHealthConfiguring:
			out.Summary.Configuring++
		case models.DNSHealthError:
			out.Summary.Error++
		}
	}
	return out, nil
}

// Get returns one domain's DNS configuration
func (s *Service) Get(ctx context.Context, id string) (*models.DomainDNS, error) {
	d, err := s.repo.GetDNS(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrDNSDomainNotFound
		}
		return nil, services.WrapInternal("failed to get dns configuration", err)
	}
	return d, nil
}

// Verify re-runs the provider verification of a domain. The simulated
// provider always succeeds; only the verification time changes.
func (s *Service) Verify(ctx context.Context, actor services.Actor, id string) (*models.DomainDNS, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	if err := services.Simulate(ctx, s.cfg.VerifyDelay); err != nil {
		return nil, fmt.Errorf("verifying dns for %s: %w", d.Domain, err)
	}

	// Records may have changed while the provider ran
	d, err = s.repo.TouchVerified(ctx, id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrDNSDomainNotFound
		}
		return nil, services.WrapInternal("failed to save dns verification", err)
	}

	s.logger.Info("dns verified", zap.String("domain", d.Domain), zap.String("user", actor.Name()))
	s.record(ctx, actor.NewActivity("DNS Verification", models.ActivityCategoryDNS, models.ActivityStatusSuccess,
		fmt.Sprintf("Verified DNS records for %q", d.Domain)).
		WithResource("domain", d.Domain).
		WithDuration(time.Since(started)).
		WithAffected(len(d.Records)))
	return d, nil
}

// Diagnose reports the records of a domain that are not verified
func (s *Service) Diagnose(ctx context.Context, id string) (*Diagnosis, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := services.Simulate(ctx, s.cfg.DiagnoseDelay); err != nil {
		return nil, fmt.Errorf("diagnosing dns for %s: %w", d.Domain, err)
	}

	issues := d.UnverifiedRecords()
	s.logger.Info("dns diagnosed", zap.String("domain", d.Domain), zap.Int("issues", len(issues)))
	return &Diagnosis{
		DomainID: d.ID,
		Domain:   d.Domain,
		Healthy:  len(issues) == 0,
		Issues:   issues,
	}, nil
}

// BulkUpdate marks the selected records pending so they propagate again.
// Unknown record ids fail the whole update.
func (s *Service) BulkUpdate(ctx context.Context, actor services.Actor, id string, recordIDs []string) (*models.DomainDNS, error) {
	if len(recordIDs) == 0 {
		err := services.NewDomainError(services.ErrorTypeValidation, "no records selected", nil)
		err.WithDetail("record_ids", "at least one record id is required")
		return nil, err
	}

	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, rid := range recordIDs {
		if _, ok := d.Record(rid); !ok {
			return nil, services.NewDomainError(services.ErrorTypeNotFound, "dns record not found", services.ErrDNSRecordNotFound).
				WithDetail("record_id", rid)
		}
	}
	for _, rid := range recordIDs {
		rec, _ := d.Record(rid)
		rec.Status = models.DNSRecordPending
	}
	if d.PropagationStatus == models.PropagationComplete {
		d.PropagationStatus = models.PropagationInProgress
	}
	if d.DNSHealth == models.DNSHealthHealthy {
		d.DNSHealth = models.DNSHealthConfiguring
	}

	if err := s.save(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("dns records updated", zap.String("domain", d.Domain), zap.Int("records", len(recordIDs)))
	s.record(ctx, actor.NewActivity("Bulk DNS Update", models.ActivityCategoryDNS, models.ActivityStatusSuccess,
		fmt.Sprintf("Queued %d DNS records on %q for re-propagation", len(recordIDs), d.Domain)).
		WithResource("domain", d.Domain).
		WithAffected(len(recordIDs)))
	return d, nil
}

func (s *Service) save(ctx context.Context, d *models.DomainDNS) error {
	if err := s.repo.SaveDNS(ctx, d); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrDNSDomainNotFound
		}
		return services.WrapInternal("failed to save dns configuration", err)
	}
	return nil
}

func (s *Service) record(ctx context.Context, entry *models.ActivityLog) {
	if err := s.activity.Record(ctx, entry); err != nil {
		s.logger.Warn("dns change saved without activity entry", zap.Error(err))
	}
}
