package dashboard

import (
	"context"

	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/services/dns"
	"github.com/greysolve/outreach-console/services/inventory"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecentActivityLimit is the number of log entries shown on the dashboard
const RecentActivityLimit = 5

// InventorySource summarises domains and inboxes
type InventorySource interface {
	Counts(ctx context.Context) (inventory.DomainSummary, inventory.InboxSummary, error)
}

// DNSSource lists DNS configurations
type DNSSource interface {
	List(ctx context.Context) (*dns.List, error)
}

// CampaignSource counts launched campaigns
type CampaignSource interface {
	CountActive(ctx context.Context) (int, error)
}

// ActivitySource returns the newest activity entries
type ActivitySource interface {
	Recent(ctx context.Context, n int) ([]*models.ActivityLog, error)
}

// Overview is the dashboard payload
type Overview struct {
	ActiveDomains    int                   `json:"active_domains"`
	TotalDomains     int                   `json:"total_domains"`
	ActiveInboxes    int                   `json:"active_inboxes"`
	TotalInboxes     int                   `json:"total_inboxes"`
	InboxesInWarmup  int                   `json:"inboxes_in_warmup"`
	InboxIssues      int                   `json:"inbox_issues"`
	DNSIssues        int                   `json:"dns_issues"`
	DNSHealthPercent int                   `json:"dns_health_percent"`
	ActiveCampaigns  int                   `json:"active_campaigns"`
	RecentActivity   []*models.ActivityLog `json:"recent_activity"`
}

// Service aggregates the console overview
type Service struct {
	inventory InventorySource
	dns       DNSSource
	campaigns CampaignSource
	activity  ActivitySource
	logger    *zap.Logger
}

// NewService creates a dashboard service
func NewService(inv InventorySource, dnsSrc DNSSource, campaigns CampaignSource, activity ActivitySource, logger *zap.Logger) *Service {
	return &Service{
		inventory: inv,
		dns:       dnsSrc,
		campaigns: campaigns,
		activity:  activity,
		logger:    logger,
	}
}

// Overview gathers every dashboard figure concurrently
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var (
		out      Overview
		domains  inventory.DomainSummary
		inboxes  inventory.InboxSummary
		dnsList  *dns.List
		campaign int
		recent   []*models.ActivityLog
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		domains, inboxes, err = s.inventory.Counts(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		dnsList, err = s.dns.List(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		campaign, err = s.campaigns.CountActive(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		recent, err = s.activity.Recent(egCtx, RecentActivityLimit)
		return err
	})
	if err := eg.Wait(); err != nil {
		s.logger.Error("dashboard aggregation failed", zap.Error(err))
		return nil, err
	}

	out.ActiveDomains = domains.Active
	out.TotalDomains = domains.Total
	out.ActiveInboxes = inboxes.Active
	out.TotalInboxes = inboxes.Total
	out.InboxesInWarmup = inboxes.Warmup
	out.InboxIssues = inboxes.Issues
	out.ActiveCampaigns = campaign
	out.RecentActivity = recent

	summary := dnsList.Summary
	out.DNSIssues = summary.Configuring + summary.Error
	if total := summary.Healthy + summary.Configuring + summary.Error; total > 0 {
		out.DNSHealthPercent = summary.Healthy * 100 / total
	}
	return &out, nil
}
