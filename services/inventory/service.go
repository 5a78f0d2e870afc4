package inventory

import (
	"context"
	"strings"

	"github.com/greysolve/outreach-console/internal/pricing"
	"github.com/greysolve/outreach-console/models"
	"github.com/greysolve/outreach-console/repositories"
	"github.com/greysolve/outreach-console/services"
	"go.uber.org/zap"
)

// DomainSummary counts sending domains by state
type DomainSummary struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	DNSHealthy int `json:"dns_healthy"`
	DNSError   int `json:"dns_error"`
}

// DomainList is a filtered list of domains with whole-inventory counts
type DomainList struct {
	Domains []*models.Domain `json:"domains"`
	Summary DomainSummary    `json:"summary"`
}

// InboxFilter selects inboxes. Empty fields match everything.
type InboxFilter struct {
	Search   string
	Status   models.InboxStatus
	Provider pricing.WorkspaceProvider
}

// Inbox is an inbox with its derived usage
type Inbox struct {
	*models.Inbox
	UsagePercent int  `json:"usage_percent"`
	HasIssue     bool `json:"has_issue"`
}

// InboxSummary counts inboxes by state
type InboxSummary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Warmup int `json:"warmup"`
	Issues int `json:"issues"`
}

// InboxList is a filtered list of inboxes with whole-inventory counts
type InboxList struct {
	Inboxes []Inbox      `json:"inboxes"`
	Summary InboxSummary `json:"summary"`
}

// Service answers inventory queries over domains and inboxes
type Service struct {
	repo   repositories.InventoryRepository
	logger *zap.Logger
}

// NewService creates an inventory service
func NewService(repo repositories.InventoryRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListDomains returns domains whose name or registrar contains search
func (s *Service) ListDomains(ctx context.Context, search string) (*DomainList, error) {
	all, err := s.repo.ListDomains(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list domains", err)
	}

	term := normalize(search)
	out := &DomainList{Domains: make([]*models.Domain, 0, len(all))}
	out.Summary.Total = len(all)
	for _, d := range all {
		if d.Status == models.DomainStatusActive {
			out.Summary.Active++
		}
		switch d.DNSHealth {
		case models.DNSHealthHealthy:
			out.Summary.DNSHealthy++
		case models.DNSHealthError:
			out.Summary.DNSError++
		}

		if contains(d.Name, term) || contains(d.Registrar, term) {
			out.Domains = append(out.Domains, d)
		}
	}

	s.logger.Debug("domains listed", zap.String("search", search), zap.Int("matched", len(out.Domains)))
	return out, nil
}

// ListInboxes returns inboxes matching f
func (s *Service) ListInboxes(ctx context.Context, f InboxFilter) (*InboxList, error) {
	all, err := s.repo.ListInboxes(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list inboxes", err)
	}

	term := normalize(f.Search)
	out := &InboxList{Inboxes: make([]Inbox, 0, len(all))}
	out.Summary.Total = len(all)
	for _, i := range all {
		switch i.Status {
		case models.InboxStatusActive:
			out.Summary.Active++
		case models.InboxStatusWarmup:
			out.Summary.Warmup++
		}
		if i.HasIssue() {
			out.Summary.Issues++
		}

		if !contains(i.Email, term) && !contains(i.Domain, term) {
			continue
		}
		if f.Status != "" && i.Status != f.Status {
			continue
		}
		if f.Provider != "" && i.Provider != f.Provider {
			continue
		}
		out.Inboxes = append(out.Inboxes, Inbox{Inbox: i, UsagePercent: i.UsagePercent(), HasIssue: i.HasIssue()})
	}

	s.logger.Debug("inboxes listed",
		zap.String("search", f.Search),
		zap.String("status", string(f.Status)),
		zap.String("provider", string(f.Provider)),
		zap.Int("matched", len(out.Inboxes)))
	return out, nil
}

// Counts summarises both lists without filtering
func (s *Service) Counts(ctx context.Context) (DomainSummary, InboxSummary, error) {
	domains, err := s.ListDomains(ctx, "")
	if err != nil {
		return DomainSummary{}, InboxSummary{}, err
	}
	inboxes, err := s.ListInboxes(ctx, InboxFilter{})
	if err != nil {
		return DomainSummary{}, InboxSummary{}, err
	}
	return domains.Summary, inboxes.Summary, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(field, term string) bool {
	return term == "" || strings.Contains(strings.ToLower(field), term)
}
